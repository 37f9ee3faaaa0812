package graph

// NodeID is a stable integer reference to one value in a graph's node
// space: an input, a constant, or an operator result.
//
// The zero value is the reserved sentinel meaning "absent/unset". Valid
// node identities start at 1.
type NodeID int

// None is the reserved sentinel identity. No real node may use it.
const None NodeID = 0

// OpKind identifies an elementary operator in the recorded stream.
type OpKind int

// Operator kinds. The recording layer may produce any of these; the
// compiler supports only the subset listed in compiler.Supported.
const (
	OpInvalid OpKind = iota

	// Unary: one argument, one result.
	OpNeg
	OpAcosh

	// Binary: two arguments, one result.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAzmul

	// Recorded by the modeling layer but not lowered by this compiler
	// generation.
	OpAbs
	OpAcos
	OpAsin
	OpAtan
	OpCos
	OpCosh
	OpExp
	OpLog
	OpPow
	OpSin
	OpSinh
	OpSqrt
	OpTan
	OpTanh
	OpSum
	OpAtom
	OpDiscrete
	OpPrint
)

// opNames maps kinds to their recording-layer names.
var opNames = map[OpKind]string{
	OpInvalid:  "invalid",
	OpNeg:      "neg",
	OpAcosh:    "acosh",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpDiv:      "div",
	OpAzmul:    "azmul",
	OpAbs:      "abs",
	OpAcos:     "acos",
	OpAsin:     "asin",
	OpAtan:     "atan",
	OpCos:      "cos",
	OpCosh:     "cosh",
	OpExp:      "exp",
	OpLog:      "log",
	OpPow:      "pow",
	OpSin:      "sin",
	OpSinh:     "sinh",
	OpSqrt:     "sqrt",
	OpTan:      "tan",
	OpTanh:     "tanh",
	OpSum:      "sum",
	OpAtom:     "atom",
	OpDiscrete: "discrete",
	OpPrint:    "print",
}

// String returns the recording-layer name of the kind.
func (k OpKind) String() string {
	if name, ok := opNames[k]; ok {
		return name
	}
	return "unknown"
}

// kindByName is the reverse of opNames, for loaders that read recorded
// graphs described by operator name.
var kindByName = func() map[string]OpKind {
	m := make(map[string]OpKind, len(opNames))
	for k, name := range opNames {
		m[name] = k
	}
	return m
}()

// KindFromName resolves a recording-layer operator name to its kind.
func KindFromName(name string) (OpKind, bool) {
	k, ok := kindByName[name]
	if !ok || k == OpInvalid {
		return OpInvalid, false
	}
	return k, true
}

// FixedArity returns the argument and result counts for kinds whose
// arity is fixed, and ok=false for variadic kinds (sum, atom, print).
func (k OpKind) FixedArity() (nArg, nResult int, ok bool) {
	switch k {
	case OpNeg, OpAcosh, OpAbs, OpAcos, OpAsin, OpAtan, OpCos, OpCosh,
		OpExp, OpLog, OpSin, OpSinh, OpSqrt, OpTan, OpTanh, OpDiscrete:
		return 1, 1, true
	case OpAdd, OpSub, OpMul, OpDiv, OpAzmul, OpPow:
		return 2, 1, true
	default:
		return 0, 0, false
	}
}

// Operator is one record in a graph's operator stream.
type Operator struct {
	// Kind is the elementary operation.
	Kind OpKind

	// Args are the argument node identities, in operand order. Each must
	// be strictly less than the identity of this operator's first result.
	Args []NodeID

	// NResult is the number of result nodes this operator produces. Every
	// kind in the supported subset produces exactly one.
	NResult int

	// Strings holds auxiliary string operands (print text, discrete
	// function names). Unused by the supported subset.
	Strings []string
}

// Graph is an immutable recorded operation sequence plus its function
// contract. It is built by an external recording or deserialization
// layer; this package and the compiler only read it.
type Graph struct {
	// FunctionName names the generated function. Must be non-empty.
	FunctionName string

	// NDynamic is the count of dynamic-parameter inputs. They occupy
	// node identities 1..NDynamic and input-buffer offsets 0..NDynamic.
	NDynamic int

	// NVariable is the count of independent-variable inputs. They occupy
	// the node identities after the dynamic parameters and input-buffer
	// offsets NDynamic..NDynamic+NVariable.
	NVariable int

	// Constants are the recorded constant values, one node identity each,
	// after the independent variables.
	Constants []float64

	// Operators is the recorded stream, in execution order. Result
	// identities are assigned contiguously after the constants, in
	// stream order.
	Operators []Operator

	// Dependents lists the output nodes, in output order. Duplicates are
	// permitted; each identity must refer to an existing node.
	Dependents []NodeID

	// DiscreteNames, AtomicNames and PrintTexts are auxiliary registries
	// referenced by OpDiscrete, OpAtom and OpPrint operators. All three
	// must be empty for the compiler's supported subset.
	DiscreteNames []string
	AtomicNames   []string
	PrintTexts    []string
}

// NumInputs returns the expected input-buffer length of the generated
// function: dynamic parameters followed by independent variables.
func (g *Graph) NumInputs() int {
	return g.NDynamic + g.NVariable
}

// FirstConstant returns the node identity of the first constant, whether
// or not any constants exist.
func (g *Graph) FirstConstant() NodeID {
	return NodeID(1 + g.NDynamic + g.NVariable)
}

// FirstResult returns the node identity assigned to the first result of
// the first operator.
func (g *Graph) FirstResult() NodeID {
	return g.FirstConstant() + NodeID(len(g.Constants))
}

// NumNodes returns the total count of node identities in use, excluding
// the reserved sentinel 0.
func (g *Graph) NumNodes() int {
	n := g.NDynamic + g.NVariable + len(g.Constants)
	for _, op := range g.Operators {
		n += op.NResult
	}
	return n
}
