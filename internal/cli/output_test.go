package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_Text(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: &bytes.Buffer{}}

	require.NoError(t, f.Emit("hello\n", map[string]string{"ignored": "x"}))
	assert.Equal(t, "hello\n", out.String())
}

func TestOutputFormatter_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: &bytes.Buffer{}}

	require.NoError(t, f.Emit("ignored", map[string]int{"n": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["n"])
	assert.NotContains(t, out.String(), "ignored")
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	f.VerboseLog("loaded %d operator(s)", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 2 operator(s)\n", errOut.String())

	f.Verbose = false
	errOut.Reset()
	f.VerboseLog("quiet")
	assert.Empty(t, errOut.String())
}
