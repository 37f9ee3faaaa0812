// Package registry holds the atomic-function table: externally supplied
// callables that future graph operator kinds reference by identifier.
//
// The table is append-only during normal operation and is looked up by
// opaque identifier, never by name. It is modeled as an explicit value
// that callers inject into the compiler rather than ambient process
// state, so the "no atomic references" precondition of the current
// compiler generation is testable in isolation.
//
// The supported operator subset never reaches the registry: graphs with
// atomic references are rejected by the validator, so the compiler
// queries this table zero times today. The record shape is fixed anyway
// because atomic lowering will depend on it.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Kind tags the calling convention of an atomic function's handle.
type Kind int

const (
	// KindUnary handles are func(float64) float64.
	KindUnary Kind = iota + 1
	// KindVector handles are func(input, output []float64) int32, the
	// same shape as a compiled artifact.
	KindVector
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindUnary:
		return "unary"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Entry is one installed atomic function.
type Entry struct {
	// Kind tags the calling convention of Handle.
	Kind Kind
	// Name is informational only; lookups never use it.
	Name string
	// Handle is the opaque callable. Its dynamic type must match Kind:
	// func(float64) float64 for KindUnary, or
	// func([]float64, []float64) int32 for KindVector.
	Handle any
}

// Registry is a process-wide atomic-function table. The zero value is
// not usable; create one with New.
//
// Thread-safety: safe for concurrent Register and Lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[uuid.UUID]Entry)}
}

// Register installs an atomic function and returns its identifier. The
// handle's dynamic type must match the kind tag; a mismatch is rejected
// so that no inconsistent entry can ever be observed by a lookup.
func (r *Registry) Register(kind Kind, name string, handle any) (uuid.UUID, error) {
	switch kind {
	case KindUnary:
		if _, ok := handle.(func(float64) float64); !ok {
			return uuid.Nil, fmt.Errorf("registry: unary handle for %q has type %T, want func(float64) float64", name, handle)
		}
	case KindVector:
		if _, ok := handle.(func([]float64, []float64) int32); !ok {
			return uuid.Nil, fmt.Errorf("registry: vector handle for %q has type %T, want func([]float64, []float64) int32", name, handle)
		}
	default:
		return uuid.Nil, fmt.Errorf("registry: unknown kind %d for %q", kind, name)
	}

	id := uuid.Must(uuid.NewV7())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = Entry{Kind: kind, Name: name, Handle: handle}
	return id, nil
}

// Lookup resolves an identifier to its entry.
func (r *Registry) Lookup(id uuid.UUID) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of installed entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
