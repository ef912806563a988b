package grid

import (
	"cmp"
	"slices"
	"sync"
)

// Map is an in-memory host grid.
//
// Cells live in a sync.Map keyed by Position. Batch evaluation reads the grid
// from many workers at once while authoring writes are rare, which is the
// access pattern sync.Map is built for: a stable key space with concurrent
// readers and no global lock on the read path.
//
// Refresh requests are collected in a separate mutex-guarded set and drained
// by the caller.
type Map struct {
	cells sync.Map // Key: Position, Value: Identity

	mu      sync.Mutex
	pending map[Position]struct{}
}

// NewMap creates an empty grid.
func NewMap() *Map {
	return &Map{pending: make(map[Position]struct{})}
}

// Set places id at p. Setting None clears the cell.
func (m *Map) Set(p Position, id Identity) {
	if id == None {
		m.cells.Delete(p)
		return
	}
	m.cells.Store(p, id)
}

// TileAt implements Query. Empty cells report None.
func (m *Map) TileAt(p Position) Identity {
	v, ok := m.cells.Load(p)
	if !ok {
		return None
	}
	return v.(Identity)
}

// TilesInBlock implements BlockQuery.
func (m *Map) TilesInBlock(origin Position, b Bounds, out []Identity) []Identity {
	out = grow(out, b.Len())
	b.Each(func(i int, off Position) {
		out[i] = m.TileAt(origin.Add(off))
	})
	return out
}

// RequestRefresh implements Refresher.
func (m *Map) RequestRefresh(ps ...Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range ps {
		m.pending[p] = struct{}{}
	}
}

// DrainRefresh returns and forgets every pending refresh request, sorted.
func (m *Map) DrainRefresh() []Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Position, 0, len(m.pending))
	for p := range m.pending {
		out = append(out, p)
	}
	clear(m.pending)
	slices.SortFunc(out, Position.Compare)
	return out
}

// Len is the number of occupied cells.
func (m *Map) Len() int {
	n := 0
	m.cells.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Cells returns every occupied cell as parallel slices, grouped so that equal
// identities are contiguous and ordered by position inside each group.
func (m *Map) Cells() ([]Position, []Identity) {
	type cell struct {
		p  Position
		id Identity
	}
	var all []cell
	m.cells.Range(func(k, v any) bool {
		all = append(all, cell{p: k.(Position), id: v.(Identity)})
		return true
	})
	slices.SortFunc(all, func(a, b cell) int {
		return cmp.Or(cmp.Compare(a.id, b.id), a.p.Compare(b.p))
	})

	ps := make([]Position, len(all))
	ids := make([]Identity, len(all))
	for i, c := range all {
		ps[i] = c.p
		ids[i] = c.id
	}
	return ps, ids
}

// SortPositions sorts ps in place by layer, row and column.
func SortPositions(ps []Position) {
	slices.SortFunc(ps, Position.Compare)
}
