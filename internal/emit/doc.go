// Package emit provides the instruction-emission backend used by the
// tapec compiler.
//
// The lowering pass in internal/compiler is written against an abstract
// emission capability: create a function with typed parameters, append
// typed instructions through a Builder positioned on a basic block, fork
// control flow with a conditional branch, then finalize and verify the
// function. This package satisfies that capability with a self-contained
// instruction arena plus an interpreting executor, so compiled artifacts
// are directly invokable without any external code-generation toolchain.
//
// ARCHITECTURE:
//
//	[graph IR] → [compiler lowering] → [emit.Module/Func] → [Verify]
//	                                                       → [Disassemble]
//	                                                       → [CompiledFunc.Invoke]
//
// VALUE MODEL:
//
// Every function owns a dense arena of typed values. Function parameters
// occupy the first arena slots; each value-producing instruction appends
// exactly one more. Instructions reference operands by Value index only,
// so a function is a flat, position-independent record of its own data
// flow. Instructions that produce no value (store, condbr, ret) have no
// arena slot.
//
// Pointer values are opaque buffer handles bound at invocation time; the
// instruction set can index through them (load, store) but not otherwise
// inspect them.
//
// VERIFICATION:
//
// Verify checks structural well-formedness before an artifact is handed
// out: every block reachable and terminated exactly once, every operand
// defined at a dominating position, operand and result types consistent
// with each opcode, calls resolvable in the owning module. A function
// that fails verification must not be invoked.
//
// Thread-safety: a Module and its functions are mutable while being
// built and must be confined to one goroutine. A verified CompiledFunc
// is immutable; Invoke allocates per-call state and is safe for
// concurrent use.
package emit
