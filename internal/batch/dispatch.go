package batch

import (
	"context"
	"fmt"

	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/tile"
)

// UnregisteredTileTypeError reports a cell whose identity has no batch
// handler. Such cells fall back to a single-cell resolver or to default data.
type UnregisteredTileTypeError struct {
	Identity grid.Identity
}

func (e *UnregisteredTileTypeError) Error() string {
	return fmt.Sprintf("no tile handler registered for identity %d", e.Identity)
}

// slot is what a run of one identity is dispatched to. At most one of
// handler and cell is used; with neither the run gets defaults.
type slot struct {
	handler  tile.Handler
	animator tile.Animator
	cell     tile.CellResolver
}

// dispatch is the lookup table of one batch call. Every identity in the
// batch is resolved against the registry exactly once, before any worker
// starts, so workers only read it.
type dispatch struct {
	index map[grid.Identity]int
	slots []slot
}

func newDispatch(ctx context.Context, reg *registry.Registry, idArrays ...[]grid.Identity) *dispatch {
	logger := ctxlog.FromContext(ctx)
	d := &dispatch{index: make(map[grid.Identity]int)}
	for _, ids := range idArrays {
		for _, id := range ids {
			if id == grid.None {
				continue
			}
			if _, seen := d.index[id]; seen {
				continue
			}
			var s slot
			if h, ok := reg.Lookup(id); ok {
				s.handler = h
				s.animator, _ = h.(tile.Animator)
			} else {
				s.cell, _ = reg.LookupCell(id)
				logger.Warn("Tile identity has no batch handler, resolving cell by cell.",
					"identity", id,
					"cell_resolver", s.cell != nil,
					"error", &UnregisteredTileTypeError{Identity: id},
				)
			}
			d.index[id] = len(d.slots)
			d.slots = append(d.slots, s)
		}
	}
	return d
}

func (d *dispatch) lookup(id grid.Identity) *slot {
	return &d.slots[d.index[id]]
}
