// Package testutil provides shared graph fixtures for tests across the
// repository. The builders mirror the node-identity layout the recording
// layer guarantees: dynamic parameters, independent variables, constants,
// then operator results, 1-based with identity 0 reserved.
package testutil

import "github.com/roach88/tapec/internal/graph"

// UnaryGraph builds a one-operator graph over a single independent
// variable: f(x0) = kind(x0), with the operator result as the only
// dependent variable.
func UnaryGraph(name string, kind graph.OpKind) *graph.Graph {
	return &graph.Graph{
		FunctionName: name,
		NVariable:    1,
		Operators: []graph.Operator{
			{Kind: kind, Args: []graph.NodeID{1}, NResult: 1},
		},
		Dependents: []graph.NodeID{2},
	}
}

// BinaryGraph builds a one-operator graph over two independent
// variables: f(x0, x1) = kind(x0, x1), with the operator result as the
// only dependent variable.
func BinaryGraph(name string, kind graph.OpKind) *graph.Graph {
	return &graph.Graph{
		FunctionName: name,
		NVariable:    2,
		Operators: []graph.Operator{
			{Kind: kind, Args: []graph.NodeID{1, 2}, NResult: 1},
		},
		Dependents: []graph.NodeID{3},
	}
}

// MixedGraph builds a graph exercising every node range at once:
//
//	inputs:    p0 (dynamic), x0, x1 (variables)
//	constants: 2.5
//	stream:    r1 = x0 * c0      (node 5)
//	           r2 = r1 + x1      (node 6)
//	           r3 = azmul(p0,r2) (node 7)
//	outputs:   [r2, r3, r2]
//
// The duplicate dependent checks that one node can be bound to several
// output slots.
func MixedGraph(name string) *graph.Graph {
	return &graph.Graph{
		FunctionName: name,
		NDynamic:     1,
		NVariable:    2,
		Constants:    []float64{2.5},
		Operators: []graph.Operator{
			{Kind: graph.OpMul, Args: []graph.NodeID{2, 4}, NResult: 1},
			{Kind: graph.OpAdd, Args: []graph.NodeID{5, 3}, NResult: 1},
			{Kind: graph.OpAzmul, Args: []graph.NodeID{1, 6}, NResult: 1},
		},
		Dependents: []graph.NodeID{6, 7, 6},
	}
}
