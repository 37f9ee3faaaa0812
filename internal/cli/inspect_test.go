package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCommand_Text(t *testing.T) {
	path := writeGraphFile(t, `
graph: {
	function:  "mixed"
	n_dynamic: 1
	n_variable: 2
	constants: [2.5]
	operators: [
		{kind: "mul", args: [2, 4]},
		{kind: "add", args: [5, 3]},
	]
	dependents: [6]
}
`)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "function:   mixed")
	assert.Contains(t, output, "nodes:      6 (1 dynamic, 2 variable, 1 constant)")
	// Result identities are assigned in stream order after the constants.
	assert.Contains(t, output, "5 = mul(2, 4)")
	assert.Contains(t, output, "6 = add(5, 3)")
	assert.Contains(t, output, "dependents: [6]")
}

func TestInspectCommand_JSON(t *testing.T) {
	path := writeGraphFile(t, addGraphCUE)

	buf := &bytes.Buffer{}
	cmd := NewInspectCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var result InspectResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "add_xy", result.Function)
	assert.Equal(t, []string{"3 = add(1, 2)"}, result.Operators)
	assert.Equal(t, []int{3}, result.Dependents)
	assert.Len(t, result.GraphHash, 64)
}
