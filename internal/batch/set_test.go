package batch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/tilesmith/internal/grid"
)

func TestPositionSet_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := NewPositionSet()
	var wg sync.WaitGroup

	// --- Act ---
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := 0; x < 50; x++ {
				s.Add(grid.Pos(x, x%5))
			}
		}()
	}
	wg.Wait()

	// --- Assert ---
	assert.Equal(t, 50, s.Len())
	assert.True(t, s.Has(grid.Pos(7, 2)))
	assert.False(t, s.Has(grid.Pos(7, 3)))

	got := s.Slice()
	assert.Len(t, got, 50)
	assert.IsNonDecreasing(t, rowMajor(got))
}

// rowMajor flattens positions to a comparable key in sort order.
func rowMajor(ps []grid.Position) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = (p.Z*1000+p.Y)*1000 + p.X
	}
	return out
}
