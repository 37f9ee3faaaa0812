// Package harness provides a conformance testing framework for the
// graph compiler.
//
// A scenario is a YAML document describing a recorded graph, the cases
// to invoke the compiled artifact with, and the expected outcomes:
// status codes, output buffers, or a compile-time rejection. Scenarios
// live in testdata/scenarios and run as subtests, so a behavioral
// contract can be added without writing Go.
//
// Golden files complement scenarios: the disassembly of a compiled
// module is compared byte-for-byte against testdata/golden via goldie,
// pinning the exact shape of the generated code (prologue, branch
// structure, operator lowering). Regenerate with:
//
//	go test ./internal/harness -update
package harness
