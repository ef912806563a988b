package batch

import (
	"sync"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/zyedidia/generic/mapset"
)

const shardCount = 32

type shard struct {
	mu  sync.Mutex
	set mapset.Set[grid.Position]
}

// PositionSet is a concurrent set of positions. Writers on different shards
// do not contend.
type PositionSet struct {
	shards [shardCount]shard
}

// NewPositionSet returns an empty set.
func NewPositionSet() *PositionSet {
	s := &PositionSet{}
	for i := range s.shards {
		s.shards[i].set = mapset.New[grid.Position]()
	}
	return s
}

func shardOf(p grid.Position) int {
	h := uint32(p.X)*73856093 ^ uint32(p.Y)*19349663 ^ uint32(p.Z)*83492791
	return int(h % shardCount)
}

// Add inserts p. It is safe for concurrent use.
func (s *PositionSet) Add(p grid.Position) {
	sh := &s.shards[shardOf(p)]
	sh.mu.Lock()
	sh.set.Put(p)
	sh.mu.Unlock()
}

// Has reports whether p is in the set.
func (s *PositionSet) Has(p grid.Position) bool {
	sh := &s.shards[shardOf(p)]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.set.Has(p)
}

// Len is the number of distinct positions.
func (s *PositionSet) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += sh.set.Size()
		sh.mu.Unlock()
	}
	return n
}

// Slice returns the positions sorted by layer, row and column.
func (s *PositionSet) Slice() []grid.Position {
	out := make([]grid.Position, 0, s.Len())
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		sh.set.Each(func(p grid.Position) { out = append(out, p) })
		sh.mu.Unlock()
	}
	grid.SortPositions(out)
	return out
}
