package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/tapec/internal/graph"
)

// Loader error codes (L100-L199)
const (
	ErrCodeNotFound   = "L100" // graph file not found
	ErrCodeCUEInvalid = "L101" // CUE parse/eval failure
	ErrCodeBadGraph   = "L102" // graph field missing or malformed
	ErrCodeBadKind    = "L103" // unknown operator kind name
)

// LoadError represents an error that occurred during graph loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// graphDoc is the decode target for the CUE "graph" field.
type graphDoc struct {
	Function      string        `json:"function"`
	NDynamic      int           `json:"n_dynamic"`
	NVariable     int           `json:"n_variable"`
	Constants     []float64     `json:"constants"`
	Operators     []operatorDoc `json:"operators"`
	Dependents    []int         `json:"dependents"`
	DiscreteNames []string      `json:"discrete_names"`
	AtomicNames   []string      `json:"atomic_names"`
	PrintTexts    []string      `json:"print_texts"`
}

type operatorDoc struct {
	Kind    string   `json:"kind"`
	Args    []int    `json:"args"`
	NResult int      `json:"n_result"`
	Strings []string `json:"strings"`
}

// LoadGraph reads a CUE file describing a recorded graph and converts
// it to the compiler's graph type. The file must evaluate to a struct
// with a top-level "graph" field:
//
//	graph: {
//	    function:   "add_xy"
//	    n_variable: 2
//	    operators: [{kind: "add", args: [1, 2]}]
//	    dependents: [3]
//	}
//
// Loading is CLI-side convenience only; the compiler itself consumes
// graph.Graph values and is agnostic to how they were described.
func LoadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("graph file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error reading graph file: %v", err)}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if v.Err() != nil {
		return nil, &LoadError{Code: ErrCodeCUEInvalid, Message: fmt.Sprintf("evaluating %s: %v", path, v.Err())}
	}

	gv := v.LookupPath(cue.ParsePath("graph"))
	if gv.Err() != nil {
		return nil, &LoadError{Code: ErrCodeBadGraph, Message: fmt.Sprintf("%s has no \"graph\" field: %v", path, gv.Err())}
	}

	var doc graphDoc
	if err := gv.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeBadGraph, Message: fmt.Sprintf("decoding graph: %v", err)}
	}
	return docToGraph(&doc)
}

// docToGraph converts the decoded document into a graph.Graph.
func docToGraph(doc *graphDoc) (*graph.Graph, error) {
	g := &graph.Graph{
		FunctionName:  doc.Function,
		NDynamic:      doc.NDynamic,
		NVariable:     doc.NVariable,
		Constants:     doc.Constants,
		DiscreteNames: doc.DiscreteNames,
		AtomicNames:   doc.AtomicNames,
		PrintTexts:    doc.PrintTexts,
	}
	for i, od := range doc.Operators {
		kind, ok := graph.KindFromName(od.Kind)
		if !ok {
			return nil, &LoadError{
				Code:    ErrCodeBadKind,
				Message: fmt.Sprintf("operators[%d]: unknown operator kind %q", i, od.Kind),
			}
		}
		op := graph.Operator{Kind: kind, NResult: od.NResult, Strings: od.Strings}
		for _, a := range od.Args {
			op.Args = append(op.Args, graph.NodeID(a))
		}
		if op.NResult == 0 {
			if _, nResult, ok := kind.FixedArity(); ok {
				op.NResult = nResult
			}
		}
		g.Operators = append(g.Operators, op)
	}
	for _, dep := range doc.Dependents {
		g.Dependents = append(g.Dependents, graph.NodeID(dep))
	}
	return g, nil
}
