package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tapec/internal/emit"
)

// AssertGoldenDisasm compares a module's disassembly against the golden
// file testdata/golden/{name}.golden. The listing is deterministic for a
// given graph, so golden files pin the exact generated-code shape:
// prologue, length-check branch, per-operator lowering, output stores.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGoldenDisasm(t *testing.T, name string, m *emit.Module) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(emit.Disassemble(m)))
}
