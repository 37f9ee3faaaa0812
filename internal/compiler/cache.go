package compiler

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roach88/tapec/internal/emit"
	"github.com/roach88/tapec/internal/graph"
	"github.com/roach88/tapec/internal/registry"
)

// Cache memoizes compiled artifacts by canonical graph hash, bounded by
// an LRU policy. Artifacts are immutable, so a hit hands out the shared
// instance.
//
// Rejected graphs are not cached: validation is cheap relative to
// lowering, and callers are expected to fix and resubmit, at which point
// the hash changes anyway.
//
// Thread-safety: safe for concurrent use; concurrent misses for the same
// graph may each compile, with one result retained.
type Cache struct {
	atomics *registry.Registry
	lru     *lru.Cache[string, *emit.CompiledFunc]
}

// NewCache creates a cache holding at most size artifacts.
func NewCache(atomics *registry.Registry, size int) (*Cache, error) {
	l, err := lru.New[string, *emit.CompiledFunc](size)
	if err != nil {
		return nil, fmt.Errorf("compiler: create artifact cache: %w", err)
	}
	return &Cache{atomics: atomics, lru: l}, nil
}

// Compile returns the cached artifact for the graph, compiling and
// caching on a miss. The diagnostic is empty on success.
func (c *Cache) Compile(g *graph.Graph) (*emit.CompiledFunc, string) {
	key := graph.Hash(g)
	if artifact, ok := c.lru.Get(key); ok {
		return artifact, ""
	}
	artifact, msg := Compile(c.atomics, g)
	if msg != "" {
		return nil, msg
	}
	c.lru.Add(key, artifact)
	return artifact, ""
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int { return c.lru.Len() }
