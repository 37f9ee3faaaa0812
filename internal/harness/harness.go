package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/tapec/internal/compiler"
	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/registry"
)

// CaseResult is the outcome of one invocation case.
type CaseResult struct {
	Name   string
	Status int32
	Output []float64
}

// Result is the outcome of running one scenario.
type Result struct {
	ScenarioName string

	// Diagnostic is the compiler's diagnostic; empty when compilation
	// succeeded.
	Diagnostic string

	// Module is the built module, for disassembly. Nil on rejection.
	Module *emit.Module

	// Cases holds one entry per invocation case, in order.
	Cases []CaseResult
}

// Run compiles the scenario's graph and executes its cases. An error
// means the harness itself could not proceed (malformed scenario,
// unexpected compile outcome); expectation mismatches inside cases are
// reported by Check, not here.
func Run(s *Scenario) (*Result, error) {
	g, err := s.Graph.ToGraph()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	c := compiler.New(registry.New())
	msg := c.FromGraph(g)
	res := &Result{ScenarioName: s.Name, Diagnostic: msg, Module: c.Module()}
	if msg != "" {
		return res, nil
	}

	artifact := c.Artifact()
	for _, cs := range s.Cases {
		output := make([]float64, cs.OutputLen)
		copy(output, cs.PreOutput)
		input := append([]float64(nil), cs.Input...)
		status := artifact.Invoke(input, output)
		res.Cases = append(res.Cases, CaseResult{Name: cs.Name, Status: status, Output: output})
	}
	return res, nil
}

// Check compares a result against the scenario's expectations and
// returns every mismatch found.
func Check(s *Scenario, res *Result) []error {
	var errs []error

	if s.WantDiagnostic != "" {
		if res.Diagnostic == "" {
			errs = append(errs, fmt.Errorf("expected rejection containing %q, but compilation succeeded", s.WantDiagnostic))
		} else if !strings.Contains(res.Diagnostic, s.WantDiagnostic) {
			errs = append(errs, fmt.Errorf("diagnostic %q does not contain %q", res.Diagnostic, s.WantDiagnostic))
		}
		return errs
	}

	if res.Diagnostic != "" {
		errs = append(errs, fmt.Errorf("unexpected rejection: %s", res.Diagnostic))
		return errs
	}

	for i, cs := range s.Cases {
		got := res.Cases[i]
		if got.Status != cs.WantStatus {
			errs = append(errs, fmt.Errorf("case %s: status = %d, want %d", cs.Name, got.Status, cs.WantStatus))
		}
		if cs.WantOutput == nil {
			continue
		}
		if len(got.Output) != len(cs.WantOutput) {
			errs = append(errs, fmt.Errorf("case %s: output length = %d, want %d", cs.Name, len(got.Output), len(cs.WantOutput)))
			continue
		}
		for j, want := range cs.WantOutput {
			// Bit-for-bit comparison: distinguishes -0.0 from 0.0 and
			// matches NaN payloads exactly.
			if math.Float64bits(got.Output[j]) != math.Float64bits(want) {
				errs = append(errs, fmt.Errorf("case %s: output[%d] = %v, want %v", cs.Name, j, got.Output[j], want))
			}
		}
	}
	return errs
}
