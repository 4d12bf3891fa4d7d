package numbering

import (
	"context"
	"sync"
)

// MemoryGenerator is an in-process Generator backed by a single mutex
// guarding a per-(kind,day) counter map. Suitable for single-instance
// deployments and tests.
type MemoryGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemoryGenerator constructs an empty MemoryGenerator.
func NewMemoryGenerator() *MemoryGenerator {
	return &MemoryGenerator{counters: make(map[string]int64)}
}

// Next returns the next number for (kind, day), starting at 1.
func (g *MemoryGenerator) Next(_ context.Context, kind Kind, day string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := string(kind) + "|" + day
	g.counters[key]++
	return format(kind, day, g.counters[key]), nil
}
