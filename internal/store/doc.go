// Package store persists compile provenance: one append-only record per
// compile attempt, keyed by a content-addressed ID and stamped with a
// monotone sequence number.
//
// The log answers "what was compiled, from which graph, and with what
// outcome" after the fact - it never feeds back into compilation. The
// CLI writes to it when asked (--db); the compiler core is unaware of it.
//
// Uses SQLite with WAL mode; Open applies pragmas and the embedded
// schema idempotently.
package store
