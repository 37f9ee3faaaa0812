package compiler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/graph"
	"github.com/roach88/tapec/internal/registry"
	"github.com/roach88/tapec/internal/testutil"
)

// mustCompile lowers g and fails the test on a nonempty diagnostic.
func mustCompile(t *testing.T, g *graph.Graph) *emit.CompiledFunc {
	t.Helper()
	artifact, msg := Compile(registry.New(), g)
	require.Empty(t, msg)
	require.NotNil(t, artifact)
	return artifact
}

func TestFromGraph_BinaryOperators(t *testing.T) {
	tests := []struct {
		kind graph.OpKind
		eval func(a, b float64) float64
	}{
		{graph.OpAdd, func(a, b float64) float64 { return a + b }},
		{graph.OpSub, func(a, b float64) float64 { return a - b }},
		{graph.OpMul, func(a, b float64) float64 { return a * b }},
		{graph.OpDiv, func(a, b float64) float64 { return a / b }},
	}
	inputs := [][2]float64{
		{3, 4},
		{-1.5, 0.25},
		{0, 7},
		{1e308, 1e308},
		{1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			artifact := mustCompile(t, testutil.BinaryGraph("f", tt.kind))
			for _, in := range inputs {
				output := make([]float64, 1)
				status := artifact.Invoke(in[:], output)
				require.Equal(t, int32(0), status)
				want := tt.eval(in[0], in[1])
				assert.Equal(t, math.Float64bits(want), math.Float64bits(output[0]),
					"%s(%g, %g)", tt.kind, in[0], in[1])
			}
		})
	}
}

func TestFromGraph_Neg(t *testing.T) {
	artifact := mustCompile(t, testutil.UnaryGraph("f", graph.OpNeg))
	output := make([]float64, 1)

	artifact.Invoke([]float64{2.5}, output)
	assert.Equal(t, -2.5, output[0])

	// Negation flips the sign bit even for zero.
	artifact.Invoke([]float64{0}, output)
	assert.Equal(t, math.Float64bits(math.Copysign(0, -1)), math.Float64bits(output[0]))
}

func TestFromGraph_Acosh(t *testing.T) {
	artifact := mustCompile(t, testutil.UnaryGraph("f", graph.OpAcosh))
	output := make([]float64, 1)

	for _, x := range []float64{1, 1.5, 2, 100} {
		artifact.Invoke([]float64{x}, output)
		assert.Equal(t, math.Acosh(x), output[0], "acosh(%g)", x)
	}

	// Below the domain the host routine yields NaN.
	artifact.Invoke([]float64{0.5}, output)
	assert.True(t, math.IsNaN(output[0]))
}

func TestFromGraph_AzmulAbsoluteZero(t *testing.T) {
	artifact := mustCompile(t, testutil.BinaryGraph("f", graph.OpAzmul))
	output := make([]float64, 1)

	// A zero first operand forces an exact zero result no matter what
	// the second operand is. A plain multiply would give NaN for the
	// infinite and NaN cases.
	for _, b := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 5, 0} {
		artifact.Invoke([]float64{0, b}, output)
		assert.Equal(t, math.Float64bits(0.0), math.Float64bits(output[0]), "azmul(0, %g)", b)
	}

	// A negative-zero first operand compares equal to zero, so the
	// guard fires there too.
	artifact.Invoke([]float64{math.Copysign(0, -1), math.Inf(1)}, output)
	assert.Equal(t, math.Float64bits(0.0), math.Float64bits(output[0]))

	// Nonzero first operands multiply through unchanged.
	artifact.Invoke([]float64{2, 3.5}, output)
	assert.Equal(t, 7.0, output[0])
	artifact.Invoke([]float64{2, math.Inf(1)}, output)
	assert.True(t, math.IsInf(output[0], 1))

	// The guard keys on the first operand only: a NaN first operand
	// with zero second propagates NaN.
	artifact.Invoke([]float64{math.NaN(), 0}, output)
	assert.True(t, math.IsNaN(output[0]))
}

func TestFromGraph_LengthCheck(t *testing.T) {
	artifact := mustCompile(t, testutil.BinaryGraph("f", graph.OpAdd))

	cases := []struct {
		name       string
		input      []float64
		output     []float64
		wantStatus int32
	}{
		{"ok", []float64{1, 2}, make([]float64, 1), 0},
		{"input too short", []float64{1}, make([]float64, 1), 1},
		{"input too long", []float64{1, 2, 3}, make([]float64, 1), 1},
		{"output too short", []float64{1, 2}, nil, 1},
		{"output too long", []float64{1, 2}, make([]float64, 2), 1},
		{"both wrong", []float64{1}, make([]float64, 3), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sentinel := make([]float64, len(tc.output))
			for i := range sentinel {
				sentinel[i] = -99
				tc.output[i] = -99
			}
			status := artifact.Invoke(tc.input, tc.output)
			assert.Equal(t, tc.wantStatus, status)
			if tc.wantStatus != 0 {
				assert.Equal(t, sentinel, tc.output, "rejected call must not write outputs")
			}
		})
	}
}

func TestFromGraph_MixedNodeRanges(t *testing.T) {
	artifact := mustCompile(t, testutil.MixedGraph("f"))
	output := make([]float64, 3)

	// p0=2, x0=1, x1=0.5: r1 = 1*2.5, r2 = 2.5+0.5 = 3, r3 = azmul(2,3) = 6.
	status := artifact.Invoke([]float64{2, 1, 0.5}, output)
	require.Equal(t, int32(0), status)
	assert.Equal(t, []float64{3, 6, 3}, output)

	// Duplicate dependents are stored independently per slot.
	assert.Equal(t, output[0], output[2])

	// p0=0 routes the azmul guard even against an infinite product term.
	status = artifact.Invoke([]float64{0, math.Inf(1), 0.5}, output)
	require.Equal(t, int32(0), status)
	assert.True(t, math.IsInf(output[0], 1))
	assert.Equal(t, 0.0, output[1])
}

func TestFromGraph_ConstantOnlyGraph(t *testing.T) {
	g := &graph.Graph{
		FunctionName: "konst",
		Constants:    []float64{1.25},
		Dependents:   []graph.NodeID{1},
	}
	artifact := mustCompile(t, g)

	output := make([]float64, 1)
	status := artifact.Invoke(nil, output)
	assert.Equal(t, int32(0), status)
	assert.Equal(t, 1.25, output[0])
}

func TestFromGraph_RejectionDiagnostics(t *testing.T) {
	c := New(registry.New())

	g := testutil.BinaryGraph("f", graph.OpSin)
	msg := c.FromGraph(g)
	assert.True(t, strings.HasPrefix(msg, "from_graph: "), "diagnostic %q", msg)
	assert.Contains(t, msg, "unsupported operator sin")
	assert.Nil(t, c.Artifact())

	g = testutil.BinaryGraph("f", graph.OpAdd)
	g.AtomicNames = []string{"solver"}
	msg = c.FromGraph(g)
	assert.Contains(t, msg, "atomic-function reference")
	assert.Nil(t, c.Artifact())

	g = testutil.BinaryGraph("", graph.OpAdd)
	msg = c.FromGraph(g)
	assert.Contains(t, msg, "function name is empty")
	assert.Nil(t, c.Artifact())
}

func TestFromGraph_SuccessState(t *testing.T) {
	c := New(registry.New())
	msg := c.FromGraph(testutil.BinaryGraph("twice", graph.OpAdd))
	require.Empty(t, msg)
	require.NotNil(t, c.Artifact())
	assert.Equal(t, "twice", c.Artifact().Name())

	listing := emit.Disassemble(c.Module())
	assert.Contains(t, listing, `module "tapec"`)
	assert.Contains(t, listing, "declare f64 @acosh(f64)")
	assert.Contains(t, listing, "func i32 @twice(")
}

func TestFromGraph_ReusableCompiler(t *testing.T) {
	// One compiler instance lowers graphs back to back; a rejection in
	// between clears the previous artifact.
	c := New(registry.New())

	require.Empty(t, c.FromGraph(testutil.BinaryGraph("a", graph.OpAdd)))
	first := c.Artifact()
	require.NotNil(t, first)

	assert.NotEmpty(t, c.FromGraph(testutil.BinaryGraph("", graph.OpAdd)))
	assert.Nil(t, c.Artifact())

	require.Empty(t, c.FromGraph(testutil.BinaryGraph("b", graph.OpMul)))
	second := c.Artifact()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)

	output := make([]float64, 1)
	require.Equal(t, int32(0), second.Invoke([]float64{3, 4}, output))
	assert.Equal(t, 12.0, output[0])
}

func TestFromGraph_OnlyBranchIsLengthCheck(t *testing.T) {
	c := New(registry.New())
	require.Empty(t, c.FromGraph(testutil.MixedGraph("f")))

	listing := emit.Disassemble(c.Module())
	assert.Equal(t, 1, strings.Count(listing, "condbr"))
	assert.Contains(t, listing, "condbr %error_len, error, body")
}
