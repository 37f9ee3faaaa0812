package registry

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()

	id, err := r.Register(KindUnary, "acosh", math.Acosh)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	e, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindUnary, e.Kind)
	assert.Equal(t, "acosh", e.Name)
	fn := e.Handle.(func(float64) float64)
	assert.Equal(t, math.Acosh(2), fn(2))

	assert.Equal(t, 1, r.Len())
}

func TestRegister_VectorHandle(t *testing.T) {
	r := New()
	handle := func(input, output []float64) int32 {
		copy(output, input)
		return 0
	}
	id, err := r.Register(KindVector, "identity", handle)
	require.NoError(t, err)

	e, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindVector, e.Kind)
}

func TestRegister_RejectsMismatchedHandle(t *testing.T) {
	r := New()

	_, err := r.Register(KindUnary, "bad", func(a, b float64) float64 { return a })
	assert.Error(t, err)

	_, err = r.Register(KindVector, "bad", math.Acosh)
	assert.Error(t, err)

	_, err = r.Register(Kind(99), "bad", math.Acosh)
	assert.Error(t, err)

	assert.Equal(t, 0, r.Len(), "no entry may be observable after a rejection")
}

func TestLookup_UnknownID(t *testing.T) {
	r := New()
	_, ok := r.Lookup(uuid.Must(uuid.NewV7()))
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unary", KindUnary.String())
	assert.Equal(t, "vector", KindVector.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
