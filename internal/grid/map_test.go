package grid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetAndTileAt(t *testing.T) {
	m := NewMap()

	assert.Equal(t, None, m.TileAt(Pos(0, 0)), "empty cells report None")

	m.Set(Pos(1, 2), 7)
	assert.Equal(t, Identity(7), m.TileAt(Pos(1, 2)))
	assert.Equal(t, 1, m.Len())

	m.Set(Pos(1, 2), None)
	assert.Equal(t, None, m.TileAt(Pos(1, 2)))
	assert.Equal(t, 0, m.Len())
}

func TestMap_TilesInBlock(t *testing.T) {
	m := NewMap()
	m.Set(Pos(-1, -1), 1) // bottom-left
	m.Set(Pos(0, 0), 2)   // center
	m.Set(Pos(1, 1), 3)   // top-right

	block := m.TilesInBlock(Pos(0, 0), Bounds{XMin: -1, YMin: -1, XMax: 1, YMax: 1}, nil)

	require.Len(t, block, 9)
	assert.Equal(t, []Identity{1, 0, 0, 0, 2, 0, 0, 0, 3}, block)
}

func TestBlock_FallsBackToTileAt(t *testing.T) {
	m := NewMap()
	m.Set(Pos(5, 5), 4)

	// Wrap the map so only Query is visible.
	var q Query = struct{ Query }{m}
	block := Block(q, Pos(5, 5), Bounds{XMin: 0, YMin: 0, XMax: 1, YMax: 0}, make([]Identity, 0, 1))

	assert.Equal(t, []Identity{4, 0}, block)
}

func TestMap_CellsGroupsByIdentity(t *testing.T) {
	m := NewMap()
	m.Set(Pos(2, 0), 2)
	m.Set(Pos(0, 0), 1)
	m.Set(Pos(1, 0), 2)
	m.Set(Pos(0, 1), 1)

	ps, ids := m.Cells()

	assert.Equal(t, []Identity{1, 1, 2, 2}, ids)
	assert.Equal(t, []Position{Pos(0, 0), Pos(0, 1), Pos(1, 0), Pos(2, 0)}, ps)
}

func TestMap_RefreshRequestsAreDeduplicated(t *testing.T) {
	m := NewMap()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RequestRefresh(Pos(1, 0), Pos(0, 0))
		}()
	}
	wg.Wait()

	assert.Equal(t, []Position{Pos(0, 0), Pos(1, 0)}, m.DrainRefresh())
	assert.Empty(t, m.DrainRefresh(), "draining forgets the requests")
}
