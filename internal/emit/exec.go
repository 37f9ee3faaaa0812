package emit

import (
	"fmt"
	"math"
)

// Pointer parameters are bound to one of the two invocation buffers.
const (
	ptrNone   uint64 = 0
	ptrInput  uint64 = 1
	ptrOutput uint64 = 2
)

// CompiledFunc is the compiler's output artifact: a verified function
// with the fixed calling convention
//
//	(input_length, input_ptr, output_length, output_ptr) -> status
//
// realized here as Invoke(input, output []float64) int32, where the two
// lengths are taken from the slices. Status 0 means success and the
// output buffer holds results in dependent-variable order; a nonzero
// status means the compiled length check failed and the output buffer
// was not touched.
//
// A CompiledFunc is immutable and safe for concurrent invocation; each
// call allocates its own evaluation state.
type CompiledFunc struct {
	fn *Func
}

// NewCompiled wraps a function as an invokable artifact. The function
// must carry the fixed four-parameter signature; anything else is a
// defect in the emitting pass.
func NewCompiled(f *Func) (*CompiledFunc, error) {
	want := []Type{TypeI32, TypePtr, TypeI32, TypePtr}
	if len(f.params) != len(want) || f.ret != TypeI32 {
		return nil, fmt.Errorf("function %q does not have the fixed entry signature", f.name)
	}
	for i, t := range want {
		if f.params[i].Type != t {
			return nil, fmt.Errorf("function %q parameter %d has type %s, want %s",
				f.name, i, f.params[i].Type, t)
		}
	}
	return &CompiledFunc{fn: f}, nil
}

// Name returns the generated function's name.
func (c *CompiledFunc) Name() string { return c.fn.name }

// Func exposes the underlying function body, for disassembly.
func (c *CompiledFunc) Func() *Func { return c.fn }

// Invoke executes the compiled function over the given buffers and
// returns its status code.
func (c *CompiledFunc) Invoke(input, output []float64) int32 {
	st := &execState{
		fn:     c.fn,
		slots:  make([]uint64, len(c.fn.values)),
		input:  input,
		output: output,
	}
	st.slots[0] = uint64(uint32(int32(len(input))))
	st.slots[1] = ptrInput
	st.slots[2] = uint64(uint32(int32(len(output))))
	st.slots[3] = ptrOutput
	return st.run()
}

// execState is the per-invocation evaluation state: one uint64 slot per
// arena value, encoded by type (f64 bits, zero-extended i32, 0/1 for i1,
// buffer tag for ptr).
type execState struct {
	fn     *Func
	slots  []uint64
	input  []float64
	output []float64
}

func (st *execState) fval(v Value) float64 { return math.Float64frombits(st.slots[v]) }
func (st *execState) ival(v Value) int32   { return int32(uint32(st.slots[v])) }
func (st *execState) bval(v Value) bool    { return st.slots[v] != 0 }

func (st *execState) setF(v Value, x float64) { st.slots[v] = math.Float64bits(x) }
func (st *execState) setI(v Value, x int32)   { st.slots[v] = uint64(uint32(x)) }
func (st *execState) setB(v Value, x bool) {
	if x {
		st.slots[v] = 1
	} else {
		st.slots[v] = 0
	}
}

// buffer resolves a pointer slot to its bound invocation buffer.
func (st *execState) buffer(v Value) []float64 {
	switch st.slots[v] {
	case ptrInput:
		return st.input
	case ptrOutput:
		return st.output
	default:
		panic(fmt.Sprintf("emit: value %%%d is not a bound buffer", v))
	}
}

// run interprets block by block until a return. Verification guarantees
// every block is terminated, so the walk cannot fall off a block's end.
func (st *execState) run() int32 {
	b := st.fn.entry()
	for {
		for _, in := range b.instrs {
			switch in.Op {
			case OpIConst:
				st.setI(in.Result, in.IntImm)
			case OpFConst:
				st.setF(in.Result, in.FloatImm)
			case OpLoad:
				buf := st.buffer(in.Args[0])
				st.setF(in.Result, buf[st.ival(in.Args[1])])
			case OpStore:
				buf := st.buffer(in.Args[0])
				buf[st.ival(in.Args[1])] = st.fval(in.Args[2])
			case OpFAdd:
				st.setF(in.Result, st.fval(in.Args[0])+st.fval(in.Args[1]))
			case OpFSub:
				st.setF(in.Result, st.fval(in.Args[0])-st.fval(in.Args[1]))
			case OpFMul:
				st.setF(in.Result, st.fval(in.Args[0])*st.fval(in.Args[1]))
			case OpFDiv:
				st.setF(in.Result, st.fval(in.Args[0])/st.fval(in.Args[1]))
			case OpFNeg:
				st.setF(in.Result, -st.fval(in.Args[0]))
			case OpFCmpOEQ:
				a, bb := st.fval(in.Args[0]), st.fval(in.Args[1])
				st.setB(in.Result, a == bb) // ordered: false on NaN
			case OpICmpNE:
				st.setB(in.Result, st.ival(in.Args[0]) != st.ival(in.Args[1]))
			case OpOr:
				st.setB(in.Result, st.bval(in.Args[0]) || st.bval(in.Args[1]))
			case OpZExt:
				if st.bval(in.Args[0]) {
					st.setI(in.Result, 1)
				} else {
					st.setI(in.Result, 0)
				}
			case OpSelect:
				if st.bval(in.Args[0]) {
					st.slots[in.Result] = st.slots[in.Args[1]]
				} else {
					st.slots[in.Result] = st.slots[in.Args[2]]
				}
			case OpCall:
				impl, ok := st.fn.mod.extern(in.Callee)
				if !ok {
					panic(fmt.Sprintf("emit: call to undeclared extern %q", in.Callee))
				}
				st.setF(in.Result, impl(st.fval(in.Args[0])))
			case OpCondBr:
				if st.bval(in.Args[0]) {
					b = in.Then
				} else {
					b = in.Else
				}
			case OpRet:
				return st.ival(in.Args[0])
			default:
				panic(fmt.Sprintf("emit: cannot execute opcode %s", in.Op))
			}
		}
	}
}
