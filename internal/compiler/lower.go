package compiler

import (
	"fmt"
	"math"

	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/graph"
	"github.com/roach88/tapec/internal/registry"
)

// diagPrefix identifies the lowering routine in every diagnostic it
// returns.
const diagPrefix = "from_graph: "

// Compiler lowers one graph at a time into an invokable artifact. An
// instance owns its module under construction and value table and must
// not be shared across goroutines while FromGraph runs; the artifact it
// produces is immutable and freely shareable.
type Compiler struct {
	// atomics is the injected atomic-function table. The supported
	// operator subset never consults it (the validator rejects atomic
	// references first), but future operator kinds resolve through it.
	atomics *registry.Registry

	module   *emit.Module
	fn       *emit.Func
	artifact *emit.CompiledFunc
}

// New creates a compiler bound to an atomic-function registry.
func New(atomics *registry.Registry) *Compiler {
	return &Compiler{atomics: atomics}
}

// Artifact returns the compiled function from the last successful
// FromGraph call, or nil.
func (c *Compiler) Artifact() *emit.CompiledFunc { return c.artifact }

// Module returns the module built by the last FromGraph call. Useful
// for disassembly; nil before the first call.
func (c *Compiler) Module() *emit.Module { return c.module }

// FromGraph lowers a recorded graph into an invokable function.
//
// The returned diagnostic is empty on success. On failure it describes
// the first violated restriction or the verification failure, prefixed
// with the routine identifier; the compiler's module and artifact state
// are then unspecified and must be discarded.
//
// The pass is a single forward scan: validate, synthesize the entry
// point with its length-check branch, seed the value table with inputs
// and constants, lower each operator in stream order, bind dependent
// variables to the output buffer, then verify the finished function.
func (c *Compiler) FromGraph(g *graph.Graph) string {
	c.artifact = nil

	if verr := Validate(g); verr != nil {
		return diagPrefix + verr.Error()
	}

	c.module = emit.NewModule("tapec")
	c.module.GetOrInsertExtern("acosh", math.Acosh)

	// The fixed entry contract: (len_input, input_ptr, len_output,
	// output_ptr) -> i32 status.
	c.fn = c.module.NewFunc(g.FunctionName, []emit.Param{
		{Name: "len_input", Type: emit.TypeI32},
		{Name: "input_ptr", Type: emit.TypePtr},
		{Name: "len_output", Type: emit.TypeI32},
		{Name: "output_ptr", Type: emit.TypePtr},
	}, emit.TypeI32)
	lenInput := c.fn.Param(0)
	inputPtr := c.fn.Param(1)
	lenOutput := c.fn.Param(2)
	outputPtr := c.fn.Param(3)

	entry := c.fn.NewBlock("entry")
	bld := emit.NewBuilder(entry)

	// Length-check prologue: compare both caller-supplied lengths with
	// the graph's expected counts and fold the two mismatch bits into
	// the status code.
	expectedLenInput := bld.IConst(int32(g.NumInputs()), "expected_len_input")
	errorLenInput := bld.ICmpNE(lenInput, expectedLenInput, "error_len_input")
	expectedLenOutput := bld.IConst(int32(len(g.Dependents)), "expected_len_output")
	errorLenOutput := bld.ICmpNE(lenOutput, expectedLenOutput, "error_len_output")
	errorLen := bld.Or(errorLenInput, errorLenOutput, "error_len")
	errorNo := bld.ZExt(errorLen, "error_no")

	// The function's only branch: fast-fail on a length mismatch,
	// otherwise fall through to the straight-line body.
	errorBlock := c.fn.NewBlock("error")
	body := c.fn.NewBlock("body")
	bld.CondBr(errorLen, errorBlock, body)

	bld.SetInsertPoint(errorBlock)
	bld.Ret(errorNo)

	bld.SetInsertPoint(body)

	// Value table, seeded in identity order: dynamic parameters from
	// input offsets 0..n_dynamic, independent variables from offsets
	// n_dynamic..n_dynamic+n_variable, then constants as immediates.
	table := newValueTable(g.NumNodes())
	for i := 0; i < g.NDynamic; i++ {
		idx := bld.IConst(int32(i), "")
		table.push(bld.Load(inputPtr, idx, fmt.Sprintf("p_%d", i)))
	}
	for i := 0; i < g.NVariable; i++ {
		idx := bld.IConst(int32(g.NDynamic+i), "")
		table.push(bld.Load(inputPtr, idx, fmt.Sprintf("x_%d", i)))
	}
	for i, cval := range g.Constants {
		table.push(bld.FConst(cval, fmt.Sprintf("c_%d", i)))
	}

	// The zero constant backing azmul's compare and select, emitted on
	// first use.
	fpZero := emit.NoValue
	zero := func() emit.Value {
		if fpZero == emit.NoValue {
			fpZero = bld.FConst(0.0, "fp_zero")
		}
		return fpZero
	}

	countAzmul := 0
	for _, op := range g.Operators {
		switch op.Kind {
		case graph.OpAcosh:
			table.push(bld.Call("acosh", []emit.Value{table.get(op.Args[0])}, ""))

		case graph.OpNeg:
			table.push(bld.FNeg(table.get(op.Args[0]), ""))

		case graph.OpAdd:
			table.push(bld.FAdd(table.get(op.Args[0]), table.get(op.Args[1]), ""))

		case graph.OpSub:
			table.push(bld.FSub(table.get(op.Args[0]), table.get(op.Args[1]), ""))

		case graph.OpMul:
			table.push(bld.FMul(table.get(op.Args[0]), table.get(op.Args[1]), ""))

		case graph.OpDiv:
			table.push(bld.FDiv(table.get(op.Args[0]), table.get(op.Args[1]), ""))

		case graph.OpAzmul:
			// Absolute-zero multiply: exactly 0 when the first operand
			// is 0, even if the second is infinite or NaN. A plain
			// multiply would produce NaN there, so the product is
			// guarded by a compare and select.
			countAzmul++
			first := table.get(op.Args[0])
			product := bld.FMul(first, table.get(op.Args[1]),
				fmt.Sprintf("azmul_%d", countAzmul))
			isZero := bld.FCmpOEQ(first, zero(),
				fmt.Sprintf("fcmp_%d", countAzmul))
			table.push(bld.Select(isZero, zero(), product,
				fmt.Sprintf("select_%d", countAzmul)))

		default:
			// The validator admits only the kinds above; reaching here
			// means Supported and this switch disagree.
			panic(fmt.Sprintf("compiler: validated operator %s has no lowering", op.Kind))
		}
	}

	// Bind dependent variables to the output buffer in order. A node
	// referenced by several dependent slots gets one store per slot.
	for i, dep := range g.Dependents {
		idx := bld.IConst(int32(i), "")
		val := table.get(dep)
		bld.Store(outputPtr, idx, val)
		c.fn.SetValueName(val, fmt.Sprintf("y_%d", i))
	}

	// The body's return reuses the zero-extended mismatch bit, which is
	// zero on this path.
	bld.Ret(errorNo)

	// Self-consistency: the finished function must be retrievable from
	// its own module.
	if found, ok := c.module.Func(g.FunctionName); !ok || found != c.fn {
		return diagPrefix + fmt.Sprintf("function %q not retrievable from its module", g.FunctionName)
	}

	if err := emit.Verify(c.fn); err != nil {
		return diagPrefix + "error during verification of generated function: " + err.Error()
	}

	artifact, err := emit.NewCompiled(c.fn)
	if err != nil {
		return diagPrefix + err.Error()
	}
	c.artifact = artifact
	return ""
}

// Compile is a convenience wrapper: one fresh compiler, one graph. It
// returns the artifact and an empty diagnostic on success.
func Compile(atomics *registry.Registry, g *graph.Graph) (*emit.CompiledFunc, string) {
	c := New(atomics)
	if msg := c.FromGraph(g); msg != "" {
		return nil, msg
	}
	return c.Artifact(), ""
}
