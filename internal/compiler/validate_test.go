package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapec/internal/graph"
	"github.com/roach88/tapec/internal/testutil"
)

func TestValidate_Accepts(t *testing.T) {
	assert.Nil(t, Validate(testutil.BinaryGraph("f", graph.OpAdd)))
	assert.Nil(t, Validate(testutil.UnaryGraph("f", graph.OpAcosh)))
	assert.Nil(t, Validate(testutil.MixedGraph("f")))

	// A graph with no operators at all is fine: dependents may bind
	// inputs or constants directly.
	assert.Nil(t, Validate(&graph.Graph{
		FunctionName: "konst",
		Constants:    []float64{1.25},
		Dependents:   []graph.NodeID{1},
	}))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(g *graph.Graph)
		wantCode string
	}{
		{
			name:     "empty function name",
			mutate:   func(g *graph.Graph) { g.FunctionName = "" },
			wantCode: ErrFunctionNameEmpty,
		},
		{
			name:     "discrete reference",
			mutate:   func(g *graph.Graph) { g.DiscreteNames = []string{"round"} },
			wantCode: ErrDiscreteNotEmpty,
		},
		{
			name:     "atomic reference",
			mutate:   func(g *graph.Graph) { g.AtomicNames = []string{"solver"} },
			wantCode: ErrAtomicNotEmpty,
		},
		{
			name:     "print directive",
			mutate:   func(g *graph.Graph) { g.PrintTexts = []string{"x = "} },
			wantCode: ErrPrintNotEmpty,
		},
		{
			name:     "unsupported operator",
			mutate:   func(g *graph.Graph) { g.Operators[0].Kind = graph.OpSin },
			wantCode: ErrUnsupportedOp,
		},
		{
			name:     "too few arguments",
			mutate:   func(g *graph.Graph) { g.Operators[0].Args = []graph.NodeID{1} },
			wantCode: ErrBadArity,
		},
		{
			name:     "wrong result count",
			mutate:   func(g *graph.Graph) { g.Operators[0].NResult = 2 },
			wantCode: ErrBadArity,
		},
		{
			name:     "unexpected string operand",
			mutate:   func(g *graph.Graph) { g.Operators[0].Strings = []string{"s"} },
			wantCode: ErrBadArity,
		},
		{
			name:     "argument is the reserved identity",
			mutate:   func(g *graph.Graph) { g.Operators[0].Args[0] = 0 },
			wantCode: ErrBadArgument,
		},
		{
			name:     "argument references the operator's own result",
			mutate:   func(g *graph.Graph) { g.Operators[0].Args[1] = 3 },
			wantCode: ErrBadArgument,
		},
		{
			name:     "dependent past the node space",
			mutate:   func(g *graph.Graph) { g.Dependents[0] = 4 },
			wantCode: ErrBadDependent,
		},
		{
			name:     "dependent is the reserved identity",
			mutate:   func(g *graph.Graph) { g.Dependents[0] = 0 },
			wantCode: ErrBadDependent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.BinaryGraph("f", graph.OpAdd)
			tt.mutate(g)
			verr := Validate(g)
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantCode, verr.Code)
			assert.NotEmpty(t, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidate_UnsupportedNamesTheKind(t *testing.T) {
	g := testutil.BinaryGraph("f", graph.OpPow)
	verr := Validate(g)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Message, "pow")
}

func TestValidate_ForwardReferenceAcrossStream(t *testing.T) {
	// The second operator may consume the first's result, but not the
	// other way around.
	g := &graph.Graph{
		FunctionName: "f",
		NVariable:    2,
		Operators: []graph.Operator{
			{Kind: graph.OpAdd, Args: []graph.NodeID{1, 2}, NResult: 1},
			{Kind: graph.OpMul, Args: []graph.NodeID{3, 1}, NResult: 1},
		},
		Dependents: []graph.NodeID{4},
	}
	assert.Nil(t, Validate(g))

	g.Operators[0].Args[1] = 4
	verr := Validate(g)
	require.NotNil(t, verr)
	assert.Equal(t, ErrBadArgument, verr.Code)
}
