package compiler

import (
	"fmt"

	"github.com/roach88/tapec/internal/graph"
)

// Validation error codes (V100-V199)
const (
	ErrFunctionNameEmpty = "V100" // function name is required
	ErrDiscreteNotEmpty  = "V101" // discrete-function references unsupported
	ErrAtomicNotEmpty    = "V102" // atomic-function references unsupported
	ErrPrintNotEmpty     = "V103" // print-text directives unsupported
	ErrUnsupportedOp     = "V104" // operator kind outside the supported set
	ErrBadArity          = "V105" // operator argument/result count malformed
	ErrBadArgument       = "V106" // argument identity violates node ordering
	ErrBadDependent      = "V107" // dependent identity refers to no node
)

// ValidationError describes the first restriction a graph violates.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Supported is the operator subset this compiler generation can lower.
// More are expected in the future.
var Supported = map[graph.OpKind]bool{
	graph.OpNeg:   true,
	graph.OpAcosh: true,
	graph.OpAdd:   true,
	graph.OpSub:   true,
	graph.OpMul:   true,
	graph.OpDiv:   true,
	graph.OpAzmul: true,
}

// Validate checks a graph against the compiler's current contract. It
// returns nil if the graph is accepted, otherwise the first violated
// restriction. Validate is a pure predicate: it emits nothing and has no
// side effects, so a rejection never leaves a partial artifact behind.
//
// Checks run in a fixed order: function name, the three auxiliary
// registries that must be empty, then each operator in stream order
// (kind membership, arity, argument ordering), then dependent-variable
// references.
func Validate(g *graph.Graph) *ValidationError {
	if g.FunctionName == "" {
		return &ValidationError{
			Code:    ErrFunctionNameEmpty,
			Field:   "function_name",
			Message: "function name is empty",
		}
	}
	if n := len(g.DiscreteNames); n != 0 {
		return &ValidationError{
			Code:    ErrDiscreteNotEmpty,
			Field:   "discrete_names",
			Message: fmt.Sprintf("graph has %d discrete-function reference(s), none are supported", n),
		}
	}
	if n := len(g.AtomicNames); n != 0 {
		return &ValidationError{
			Code:    ErrAtomicNotEmpty,
			Field:   "atomic_names",
			Message: fmt.Sprintf("graph has %d atomic-function reference(s), none are supported", n),
		}
	}
	if n := len(g.PrintTexts); n != 0 {
		return &ValidationError{
			Code:    ErrPrintNotEmpty,
			Field:   "print_texts",
			Message: fmt.Sprintf("graph has %d print-text directive(s), none are supported", n),
		}
	}

	// firstResult advances as results are assigned in stream order; an
	// operator's arguments must all precede its own first result.
	firstResult := g.FirstResult()
	for i, op := range g.Operators {
		field := fmt.Sprintf("operators[%d]", i)
		if !Supported[op.Kind] {
			return &ValidationError{
				Code:    ErrUnsupportedOp,
				Field:   field,
				Message: fmt.Sprintf("graph has unsupported operator %s", op.Kind),
			}
		}
		nArg, nResult, _ := op.Kind.FixedArity()
		if len(op.Args) != nArg || op.NResult != nResult {
			return &ValidationError{
				Code:  ErrBadArity,
				Field: field,
				Message: fmt.Sprintf("operator %s has %d argument(s) and %d result(s), want %d and %d",
					op.Kind, len(op.Args), op.NResult, nArg, nResult),
			}
		}
		if len(op.Strings) != 0 {
			return &ValidationError{
				Code:    ErrBadArity,
				Field:   field,
				Message: fmt.Sprintf("operator %s carries %d string operand(s), want 0", op.Kind, len(op.Strings)),
			}
		}
		for j, a := range op.Args {
			if a <= graph.None || a >= firstResult {
				return &ValidationError{
					Code:  ErrBadArgument,
					Field: fmt.Sprintf("%s.args[%d]", field, j),
					Message: fmt.Sprintf("argument node %d must be in 1..%d (before the operator's first result)",
						a, firstResult-1),
				}
			}
		}
		firstResult += graph.NodeID(op.NResult)
	}

	numNodes := graph.NodeID(g.NumNodes())
	for i, d := range g.Dependents {
		if d <= graph.None || d > numNodes {
			return &ValidationError{
				Code:    ErrBadDependent,
				Field:   fmt.Sprintf("dependents[%d]", i),
				Message: fmt.Sprintf("dependent node %d does not exist (graph has nodes 1..%d)", d, numNodes),
			}
		}
	}
	return nil
}
