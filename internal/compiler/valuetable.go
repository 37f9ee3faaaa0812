package compiler

import (
	"fmt"

	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/graph"
)

// valueTable is the dense mapping from node identity to generated-code
// value. Index 0 is a reserved sentinel holding no value; real entries
// are appended strictly in identity order as lowering proceeds (dynamic
// parameters, independent variables, constants, then one entry per
// operator result).
//
// Reading identity 0 or an identity that has not been produced yet is a
// defect in the validator/lowering ordering, not a recoverable runtime
// condition, so get panics.
type valueTable struct {
	vals []emit.Value
}

// newValueTable creates a table with the reserved sentinel slot and
// capacity for the graph's full node space.
func newValueTable(numNodes int) *valueTable {
	t := &valueTable{vals: make([]emit.Value, 1, numNodes+1)}
	t.vals[0] = emit.NoValue
	return t
}

// push appends the value for the next node identity.
func (t *valueTable) push(v emit.Value) {
	t.vals = append(t.vals, v)
}

// get resolves a node identity to its generated-code value.
func (t *valueTable) get(id graph.NodeID) emit.Value {
	if id <= graph.None {
		panic(fmt.Sprintf("compiler: value table read of reserved identity %d", id))
	}
	if int(id) >= len(t.vals) {
		panic(fmt.Sprintf("compiler: value table read of identity %d before it was produced (have %d)",
			id, len(t.vals)-1))
	}
	return t.vals[id]
}

// size returns the highest node identity with an entry.
func (t *valueTable) size() int {
	return len(t.vals) - 1
}
