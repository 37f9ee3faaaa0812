// Package graph defines the operation-sequence intermediate representation
// consumed by the tapec compiler.
//
// A Graph is the immutable record of a mathematical function produced by an
// external recording layer: an ordered node space plus an operator stream.
// The node space is a dense, 1-based identity arena laid out in four
// disjoint ranges, in this fixed order:
//
//	dynamic parameters, independent variables, constants, operator results
//
// Identity 0 is reserved and means "absent/unset"; no real node uses it.
// Identities are assigned strictly in the order above and never reused.
// This ordering is part of the wire contract between the recording layer
// and the compiler: an operator's argument identities are always strictly
// less than the identity of its own first result (DAG property - no
// forward references, no cycles).
//
// Construction of graphs is external to this package. The package provides
// the data model, node-identity arithmetic, and a content-addressed hash
// used as a cache and provenance key.
//
// SEALED OPERATOR KINDS:
//
// OpKind is a closed enumeration. Backends dispatch on it with exhaustive
// switches and a reject-by-default case, so adding an operator kind is a
// compile-time-visible change:
//
//	switch op.Kind {
//	case graph.OpAdd:
//	    // ...
//	default:
//	    // unsupported kind, reject with its name
//	}
package graph
