package numbering

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGeneratorMonotonic(t *testing.T) {
	g := NewMemoryGenerator()
	ctx := context.Background()
	n1, err := g.Next(ctx, KindAlert, "20260730")
	assert.NoError(t, err)
	n2, err := g.Next(ctx, KindAlert, "20260730")
	assert.NoError(t, err)
	assert.Equal(t, "ALT-20260730-000001", n1)
	assert.Equal(t, "ALT-20260730-000002", n2)
}

func TestMemoryGeneratorConcurrentStrictlyIncreasing(t *testing.T) {
	g := NewMemoryGenerator()
	ctx := context.Background()
	const n = 100
	results := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			num, _ := g.Next(ctx, KindCase, "20260730")
			results[idx] = num
		}(i)
	}
	wg.Wait()
	seen := make(map[string]bool, n)
	for _, r := range results {
		assert.False(t, seen[r], "duplicate number generated: %s", r)
		seen[r] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryGeneratorSeparateDaysIndependent(t *testing.T) {
	g := NewMemoryGenerator()
	ctx := context.Background()
	a, _ := g.Next(ctx, KindSAR, "20260730")
	b, _ := g.Next(ctx, KindSAR, "20260731")
	assert.Equal(t, "SAR-20260730-000001", a)
	assert.Equal(t, "SAR-20260731-000001", b)
}
