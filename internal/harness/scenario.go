package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tapec/internal/graph"
)

// Scenario defines one conformance scenario: a recorded graph plus the
// invocations and expectations to check against it.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the subtest and
	// golden-file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Graph describes the recorded graph to compile.
	Graph GraphDoc `yaml:"graph"`

	// WantDiagnostic, when non-empty, asserts that compilation is
	// rejected and the diagnostic contains this substring. Cases must be
	// empty in that case.
	WantDiagnostic string `yaml:"want_diagnostic,omitempty"`

	// Cases are the invocations to run against the compiled artifact.
	Cases []Case `yaml:"cases,omitempty"`
}

// GraphDoc is the YAML shape of a recorded graph.
type GraphDoc struct {
	Function      string        `yaml:"function"`
	NDynamic      int           `yaml:"n_dynamic"`
	NVariable     int           `yaml:"n_variable"`
	Constants     []float64     `yaml:"constants"`
	Operators     []OperatorDoc `yaml:"operators"`
	Dependents    []int         `yaml:"dependents"`
	DiscreteNames []string      `yaml:"discrete_names"`
	AtomicNames   []string      `yaml:"atomic_names"`
	PrintTexts    []string      `yaml:"print_texts"`
}

// OperatorDoc is the YAML shape of one operator record.
type OperatorDoc struct {
	Kind    string   `yaml:"kind"`
	Args    []int    `yaml:"args"`
	NResult int      `yaml:"n_result,omitempty"`
	Strings []string `yaml:"strings,omitempty"`
}

// Case is one invocation of the compiled artifact.
type Case struct {
	// Name identifies the case within its scenario.
	Name string `yaml:"name"`

	// Input is the input buffer to invoke with; its length is the
	// supplied input length.
	Input []float64 `yaml:"input"`

	// OutputLen sizes the output buffer for the call.
	OutputLen int `yaml:"output_len"`

	// PreOutput optionally pre-fills the output buffer, to assert it is
	// untouched on a length-check failure. Defaults to zeros.
	PreOutput []float64 `yaml:"pre_output,omitempty"`

	// WantStatus is the expected status code.
	WantStatus int32 `yaml:"want_status"`

	// WantOutput, when present, is the expected output buffer after the
	// call, compared bit-for-bit.
	WantOutput []float64 `yaml:"want_output,omitempty"`
}

// ToGraph converts the YAML document into the compiler's graph type.
func (d *GraphDoc) ToGraph() (*graph.Graph, error) {
	g := &graph.Graph{
		FunctionName:  d.Function,
		NDynamic:      d.NDynamic,
		NVariable:     d.NVariable,
		Constants:     d.Constants,
		DiscreteNames: d.DiscreteNames,
		AtomicNames:   d.AtomicNames,
		PrintTexts:    d.PrintTexts,
	}
	for i, od := range d.Operators {
		kind, ok := graph.KindFromName(od.Kind)
		if !ok {
			return nil, fmt.Errorf("operators[%d]: unknown operator kind %q", i, od.Kind)
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
	for _, dep := range d.Dependents {
		g.Dependents = append(g.Dependents, graph.NodeID(dep))
	}
	return g, nil
}

// LoadScenario reads and parses one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	if s.WantDiagnostic != "" && len(s.Cases) > 0 {
		return nil, fmt.Errorf("scenario %s expects rejection but has cases", s.Name)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario under dir, sorted by file
// name for deterministic test order.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)
	var scenarios []*Scenario
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
