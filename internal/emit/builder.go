package emit

import "fmt"

// Builder appends instructions to a basic block. It mirrors the shape of
// an IR builder: position it on a block, then call one method per
// instruction. Value-producing methods return the new arena Value.
//
// The builder panics on misuse (emitting into a terminated block,
// operand of the wrong type). Those are defects in the emitting pass,
// not runtime conditions; the structural verifier re-checks everything
// independently before an artifact is released.
type Builder struct {
	blk *Block
}

// NewBuilder creates a builder positioned on the given block.
func NewBuilder(b *Block) *Builder {
	return &Builder{blk: b}
}

// SetInsertPoint repositions the builder onto another block.
func (bld *Builder) SetInsertPoint(b *Block) {
	bld.blk = b
}

// append adds an instruction, allocating a result slot when t != TypeVoid.
func (bld *Builder) append(in Instr, t Type, name string) Value {
	if bld.blk == nil {
		panic("emit: builder has no insert point")
	}
	if bld.blk.terminated() {
		panic(fmt.Sprintf("emit: block %q already terminated", bld.blk.name))
	}
	in.Result = NoValue
	if t != TypeVoid {
		in.Result = bld.blk.fn.newValue(t, name)
	}
	bld.blk.instrs = append(bld.blk.instrs, in)
	return in.Result
}

// want panics unless v has type t.
func (bld *Builder) want(v Value, t Type, op Op) {
	if got := bld.blk.fn.typeOf(v); got != t {
		panic(fmt.Sprintf("emit: %s operand %%%d has type %s, want %s", op, v, got, t))
	}
}

// IConst emits a 32-bit integer constant.
func (bld *Builder) IConst(v int32, name string) Value {
	return bld.append(Instr{Op: OpIConst, IntImm: v}, TypeI32, name)
}

// FConst emits a floating-point constant.
func (bld *Builder) FConst(v float64, name string) Value {
	return bld.append(Instr{Op: OpFConst, FloatImm: v}, TypeF64, name)
}

// Load emits an element read: buffer ptr, i32 index, f64 result.
func (bld *Builder) Load(ptr, index Value, name string) Value {
	bld.want(ptr, TypePtr, OpLoad)
	bld.want(index, TypeI32, OpLoad)
	return bld.append(Instr{Op: OpLoad, Args: []Value{ptr, index}}, TypeF64, name)
}

// Store emits an element write: buffer ptr, i32 index, f64 value.
func (bld *Builder) Store(ptr, index, val Value) {
	bld.want(ptr, TypePtr, OpStore)
	bld.want(index, TypeI32, OpStore)
	bld.want(val, TypeF64, OpStore)
	bld.append(Instr{Op: OpStore, Args: []Value{ptr, index, val}}, TypeVoid, "")
}

// binaryF emits one two-operand floating-point instruction.
func (bld *Builder) binaryF(op Op, a, b Value, name string) Value {
	bld.want(a, TypeF64, op)
	bld.want(b, TypeF64, op)
	return bld.append(Instr{Op: op, Args: []Value{a, b}}, TypeF64, name)
}

// FAdd emits floating-point addition.
func (bld *Builder) FAdd(a, b Value, name string) Value {
	return bld.binaryF(OpFAdd, a, b, name)
}

// FSub emits floating-point subtraction.
func (bld *Builder) FSub(a, b Value, name string) Value {
	return bld.binaryF(OpFSub, a, b, name)
}

// FMul emits floating-point multiplication.
func (bld *Builder) FMul(a, b Value, name string) Value {
	return bld.binaryF(OpFMul, a, b, name)
}

// FDiv emits floating-point division.
func (bld *Builder) FDiv(a, b Value, name string) Value {
	return bld.binaryF(OpFDiv, a, b, name)
}

// FNeg emits floating-point negation.
func (bld *Builder) FNeg(a Value, name string) Value {
	bld.want(a, TypeF64, OpFNeg)
	return bld.append(Instr{Op: OpFNeg, Args: []Value{a}}, TypeF64, name)
}

// FCmpOEQ emits an ordered floating-point equality compare.
func (bld *Builder) FCmpOEQ(a, b Value, name string) Value {
	bld.want(a, TypeF64, OpFCmpOEQ)
	bld.want(b, TypeF64, OpFCmpOEQ)
	return bld.append(Instr{Op: OpFCmpOEQ, Args: []Value{a, b}}, TypeI1, name)
}

// ICmpNE emits an integer inequality compare.
func (bld *Builder) ICmpNE(a, b Value, name string) Value {
	bld.want(a, TypeI32, OpICmpNE)
	bld.want(b, TypeI32, OpICmpNE)
	return bld.append(Instr{Op: OpICmpNE, Args: []Value{a, b}}, TypeI1, name)
}

// Or emits a boolean OR.
func (bld *Builder) Or(a, b Value, name string) Value {
	bld.want(a, TypeI1, OpOr)
	bld.want(b, TypeI1, OpOr)
	return bld.append(Instr{Op: OpOr, Args: []Value{a, b}}, TypeI1, name)
}

// ZExt emits a zero extension from i1 to i32.
func (bld *Builder) ZExt(a Value, name string) Value {
	bld.want(a, TypeI1, OpZExt)
	return bld.append(Instr{Op: OpZExt, Args: []Value{a}}, TypeI32, name)
}

// Select emits a conditional select: cond ? a : b.
func (bld *Builder) Select(cond, a, b Value, name string) Value {
	bld.want(cond, TypeI1, OpSelect)
	bld.want(a, TypeF64, OpSelect)
	bld.want(b, TypeF64, OpSelect)
	return bld.append(Instr{Op: OpSelect, Args: []Value{cond, a, b}}, TypeF64, name)
}

// Call emits a call to a declared unary extern.
func (bld *Builder) Call(callee string, args []Value, name string) Value {
	for _, a := range args {
		bld.want(a, TypeF64, OpCall)
	}
	in := Instr{Op: OpCall, Callee: callee, Args: append([]Value(nil), args...)}
	return bld.append(in, TypeF64, name)
}

// CondBr terminates the current block with a two-way branch.
func (bld *Builder) CondBr(cond Value, then, els *Block) {
	bld.want(cond, TypeI1, OpCondBr)
	bld.append(Instr{Op: OpCondBr, Args: []Value{cond}, Then: then, Else: els}, TypeVoid, "")
}

// Ret terminates the current block returning an i32 status.
func (bld *Builder) Ret(v Value) {
	bld.want(v, TypeI32, OpRet)
	bld.append(Instr{Op: OpRet, Args: []Value{v}}, TypeVoid, "")
}
