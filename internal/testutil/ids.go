// Package testutil provides deterministic stand-ins for the
// nondeterministic inputs of the composition core: entity ids and wall
// time. Tests that use them produce identical state on every run, which
// keeps golden snapshots byte-stable.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator mints "prefix-1", "prefix-2", ... ids.
//
// Thread-safe; the counter never resets within a generator, so every id
// it issues is unique.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator with the given prefix.
// An empty prefix defaults to "id".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// NewID implements composition.IDGenerator.
func (g *SequentialIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
