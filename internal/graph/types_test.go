package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRanges(t *testing.T) {
	g := &Graph{
		FunctionName: "f",
		NDynamic:     2,
		NVariable:    3,
		Constants:    []float64{1.5, 2.5},
		Operators: []Operator{
			{Kind: OpAdd, Args: []NodeID{1, 2}, NResult: 1},
			{Kind: OpMul, Args: []NodeID{8, 3}, NResult: 1},
		},
		Dependents: []NodeID{9},
	}

	assert.Equal(t, 5, g.NumInputs())
	assert.Equal(t, NodeID(6), g.FirstConstant())
	assert.Equal(t, NodeID(8), g.FirstResult())
	assert.Equal(t, 9, g.NumNodes())
}

func TestNodeRanges_Empty(t *testing.T) {
	g := &Graph{FunctionName: "f"}
	assert.Equal(t, 0, g.NumInputs())
	assert.Equal(t, NodeID(1), g.FirstConstant())
	assert.Equal(t, NodeID(1), g.FirstResult())
	assert.Equal(t, 0, g.NumNodes())
}

func TestOpKindString(t *testing.T) {
	assert.Equal(t, "azmul", OpAzmul.String())
	assert.Equal(t, "acosh", OpAcosh.String())
	assert.Equal(t, "unknown", OpKind(999).String())
}

func TestKindFromName(t *testing.T) {
	k, ok := KindFromName("azmul")
	require.True(t, ok)
	assert.Equal(t, OpAzmul, k)

	_, ok = KindFromName("frobnicate")
	assert.False(t, ok)

	// The invalid placeholder is not resolvable by name.
	_, ok = KindFromName("invalid")
	assert.False(t, ok)
}

func TestFixedArity(t *testing.T) {
	tests := []struct {
		kind    OpKind
		nArg    int
		nResult int
		ok      bool
	}{
		{OpNeg, 1, 1, true},
		{OpAcosh, 1, 1, true},
		{OpAdd, 2, 1, true},
		{OpAzmul, 2, 1, true},
		{OpPow, 2, 1, true},
		{OpSum, 0, 0, false},
		{OpAtom, 0, 0, false},
		{OpPrint, 0, 0, false},
	}
	for _, tt := range tests {
		nArg, nResult, ok := tt.kind.FixedArity()
		assert.Equal(t, tt.ok, ok, "%s", tt.kind)
		if tt.ok {
			assert.Equal(t, tt.nArg, nArg, "%s", tt.kind)
			assert.Equal(t, tt.nResult, nResult, "%s", tt.kind)
		}
	}
}
