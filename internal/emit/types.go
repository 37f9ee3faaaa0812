package emit

import "fmt"

// Type classifies a value in the instruction arena.
type Type int

const (
	// TypeVoid marks instructions that produce no value.
	TypeVoid Type = iota
	// TypeF64 is a 64-bit IEEE-754 floating point value.
	TypeF64
	// TypeI32 is a 32-bit signed integer value.
	TypeI32
	// TypeI1 is a single-bit boolean value.
	TypeI1
	// TypePtr is an opaque float64-buffer handle bound at invocation.
	TypePtr
)

// String returns the listing name of the type.
func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeF64:
		return "f64"
	case TypeI32:
		return "i32"
	case TypeI1:
		return "i1"
	case TypePtr:
		return "ptr"
	default:
		return "badtype"
	}
}

// Value references one slot in a function's value arena. Parameters
// occupy the first slots; each value-producing instruction appends one.
type Value int

// NoValue marks the absence of a result.
const NoValue Value = -1

// Op is an instruction opcode.
type Op int

const (
	opInvalid Op = iota

	// Immediates.
	OpIConst // i32 from IntImm
	OpFConst // f64 from FloatImm

	// Memory. Buffers hold f64 elements; the index operand is i32.
	OpLoad  // args: [ptr, index] -> f64
	OpStore // args: [ptr, index, value f64]

	// Floating-point arithmetic.
	OpFAdd // args: [f64, f64] -> f64
	OpFSub
	OpFMul
	OpFDiv
	OpFNeg // args: [f64] -> f64

	// Comparison and selection.
	OpFCmpOEQ // args: [f64, f64] -> i1, ordered equality
	OpICmpNE  // args: [i32, i32] -> i1
	OpOr      // args: [i1, i1] -> i1
	OpZExt    // args: [i1] -> i32
	OpSelect  // args: [i1, f64, f64] -> f64

	// Calls into the module's extern table.
	OpCall // Callee + args: [f64...] -> f64

	// Terminators.
	OpCondBr // args: [i1]; Then/Else blocks
	OpRet    // args: [i32]
)

// mnemonics for the disassembler.
var opMnemonics = map[Op]string{
	OpIConst:  "iconst",
	OpFConst:  "fconst",
	OpLoad:    "load",
	OpStore:   "store",
	OpFAdd:    "fadd",
	OpFSub:    "fsub",
	OpFMul:    "fmul",
	OpFDiv:    "fdiv",
	OpFNeg:    "fneg",
	OpFCmpOEQ: "fcmp.oeq",
	OpICmpNE:  "icmp.ne",
	OpOr:      "or",
	OpZExt:    "zext",
	OpSelect:  "select",
	OpCall:    "call",
	OpCondBr:  "condbr",
	OpRet:     "ret",
}

// String returns the opcode mnemonic.
func (o Op) String() string {
	if m, ok := opMnemonics[o]; ok {
		return m
	}
	return "badop"
}

// IsTerminator reports whether the opcode ends a basic block.
func (o Op) IsTerminator() bool {
	return o == OpCondBr || o == OpRet
}

// Instr is one emitted instruction.
type Instr struct {
	Op   Op
	Args []Value

	// Result is the arena slot this instruction defines, or NoValue.
	Result Value

	// IntImm holds the OpIConst immediate.
	IntImm int32
	// FloatImm holds the OpFConst immediate.
	FloatImm float64
	// Callee names the extern for OpCall.
	Callee string
	// Then and Else are the OpCondBr successors.
	Then, Else *Block
}

// Block is a basic block: a straight-line instruction list ending in a
// single terminator.
type Block struct {
	fn     *Func
	name   string
	instrs []Instr
}

// Name returns the block's label.
func (b *Block) Name() string { return b.name }

// terminated reports whether the block already ends in a terminator.
func (b *Block) terminated() bool {
	n := len(b.instrs)
	return n > 0 && b.instrs[n-1].Op.IsTerminator()
}

// Param describes one function parameter.
type Param struct {
	Name string
	Type Type
}

// valueInfo records the type and listing name of one arena slot.
type valueInfo struct {
	typ  Type
	name string
}

// Func is a function under construction or, once verified, the body of a
// compiled artifact.
type Func struct {
	mod    *Module
	name   string
	params []Param
	ret    Type
	blocks []*Block
	values []valueInfo
}

// Name returns the function's name in its module.
func (f *Func) Name() string { return f.name }

// NumParams returns the parameter count.
func (f *Func) NumParams() int { return len(f.params) }

// Param returns the value referencing parameter i.
func (f *Func) Param(i int) Value {
	if i < 0 || i >= len(f.params) {
		panic(fmt.Sprintf("emit: parameter index %d out of range", i))
	}
	return Value(i)
}

// NewBlock appends an empty basic block to the function. The first block
// created is the entry block.
func (f *Func) NewBlock(name string) *Block {
	b := &Block{fn: f, name: name}
	f.blocks = append(f.blocks, b)
	return b
}

// entry returns the function's entry block, or nil if none exists.
func (f *Func) entry() *Block {
	if len(f.blocks) == 0 {
		return nil
	}
	return f.blocks[0]
}

// typeOf returns the type of an arena value.
func (f *Func) typeOf(v Value) Type {
	if v < 0 || int(v) >= len(f.values) {
		return TypeVoid
	}
	return f.values[v].typ
}

// newValue appends an arena slot and returns its Value.
func (f *Func) newValue(t Type, name string) Value {
	f.values = append(f.values, valueInfo{typ: t, name: name})
	return Value(len(f.values) - 1)
}

// SetValueName overrides the listing name of a value. Used when a value
// acquires a role after creation (the original pass names dependent
// results as outputs are bound).
func (f *Func) SetValueName(v Value, name string) {
	if v < 0 || int(v) >= len(f.values) {
		panic(fmt.Sprintf("emit: value %d out of range", v))
	}
	f.values[v].name = name
}

// Module owns a set of named functions and the extern table their call
// instructions resolve against.
type Module struct {
	name    string
	funcs   map[string]*Func
	order   []string
	externs map[string]func(float64) float64
	extOrd  []string
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:    name,
		funcs:   make(map[string]*Func),
		externs: make(map[string]func(float64) float64),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// NewFunc creates a function with the given signature and inserts it
// into the module. Parameters are bound to the first arena slots in
// order.
func (m *Module) NewFunc(name string, params []Param, ret Type) *Func {
	f := &Func{mod: m, name: name, params: params, ret: ret}
	for _, p := range params {
		f.newValue(p.Type, p.Name)
	}
	m.funcs[name] = f
	m.order = append(m.order, name)
	return f
}

// Func looks a function up by name.
func (m *Module) Func(name string) (*Func, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// GetOrInsertExtern declares a unary f64 extern and binds its host
// implementation. Redeclaring a name replaces nothing: the first binding
// wins, matching declare-once semantics.
func (m *Module) GetOrInsertExtern(name string, impl func(float64) float64) {
	if _, ok := m.externs[name]; ok {
		return
	}
	m.externs[name] = impl
	m.extOrd = append(m.extOrd, name)
}

// extern resolves a declared extern by name.
func (m *Module) extern(name string) (func(float64) float64, bool) {
	fn, ok := m.externs[name]
	return fn, ok
}
