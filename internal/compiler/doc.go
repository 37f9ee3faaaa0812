// Package compiler lowers a recorded operation graph into a directly
// invokable function.
//
// The pipeline is a single forward pass with no backtracking:
//
//	[graph.Graph] → Validate → entry-point synthesis → per-operator
//	lowering (value table) → output binding → Verify → CompiledFunc
//
// Validate is a pure predicate run before any code is emitted; a
// rejected graph never leaves a partially built artifact. Lowering walks
// the operator stream once, resolving argument node identities through a
// value table that grows in identity order, and appends one or more
// instructions per operator. The generated function carries the fixed
// entry contract (input length, input buffer, output length, output
// buffer) -> status, with the length check compiled into its body as the
// function's only branch.
//
// Expected failures (precondition violations, verification failures) are
// reported as routine-prefixed diagnostic strings, empty on success.
// Defects - an operator the validator accepted but lowering cannot
// handle, or a value-table read of an unset identity - panic.
package compiler
