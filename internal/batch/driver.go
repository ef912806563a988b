package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/tile"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of array entries one worker task covers.
const DefaultChunkSize = 128

// Options tunes the worker pool.
type Options struct {
	// Workers caps concurrently running chunks. Zero means GOMAXPROCS.
	Workers int
	// ChunkSize is the number of positions per task. Zero means
	// DefaultChunkSize.
	ChunkSize int
}

// Driver runs refresh and resolve batches against a registry.
type Driver struct {
	reg  *registry.Registry
	opts Options
}

// New creates a Driver. The registry must not change while batches run.
func New(reg *registry.Registry, opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Driver{reg: reg, opts: opts}
}

// Options returns the effective options.
func (d *Driver) Options() Options { return d.opts }

// forEachChunk runs fn over [0,n) split into chunks on the worker pool and
// waits for all of them.
func (d *Driver) forEachChunk(ctx context.Context, n int, fn func(logger *slog.Logger, start, end int)) {
	logger := ctxlog.FromContext(ctx)
	var g errgroup.Group
	g.SetLimit(d.opts.Workers)
	for i, start := 0, 0; start < n; i, start = i+1, start+d.opts.ChunkSize {
		end := min(start+d.opts.ChunkSize, n)
		chunkLogger := logger.With("chunk", i)
		g.Go(func() error {
			fn(chunkLogger, start, end)
			return nil
		})
	}
	// Chunk functions never fail.
	_ = g.Wait()
}

// checkLengths verifies that every identity array matches the position
// array. A nil optional array is allowed.
func checkLengths(positions int, required []grid.Identity, optional ...[]grid.Identity) error {
	if len(required) != positions {
		return fmt.Errorf("identity array has %d entries for %d positions", len(required), positions)
	}
	for _, a := range optional {
		if a != nil && len(a) != positions {
			return fmt.Errorf("identity array has %d entries for %d positions", len(a), positions)
		}
	}
	return nil
}

// Refresh returns every position whose visual may change because the cells
// at positions changed from oldIDs to newIDs. Each position appears once and
// the result is sorted. oldIDs may be nil.
//
// positions must be sorted so that runs of equal identity are contiguous;
// unsorted input is still correct but dispatches shorter runs.
func (d *Driver) Refresh(ctx context.Context, positions []grid.Position, oldIDs, newIDs []grid.Identity) ([]grid.Position, error) {
	if err := checkLengths(len(positions), newIDs, oldIDs); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	table := newDispatch(ctx, d.reg, oldIDs, newIDs)
	set := NewPositionSet()

	d.forEachChunk(ctx, len(positions), func(chunkLogger *slog.Logger, start, end int) {
		runs := 0
		for _, ids := range [][]grid.Identity{oldIDs, newIDs} {
			if ids == nil {
				continue
			}
			ScanRuns(ids, start, end, func(s, e int, id grid.Identity) {
				runs++
				refreshRun(table.lookup(id), positions[s:e], set.Add)
			})
		}
		chunkLogger.Debug("Refresh chunk done.", "start", start, "end", end, "runs", runs)
	})

	out := set.Slice()
	logger.Debug("Refresh batch finished.", "positions", len(positions), "identities", len(table.slots), "refresh", len(out))
	return out, nil
}

func refreshRun(s *slot, positions []grid.Position, emit func(grid.Position)) {
	switch {
	case s.handler != nil:
		s.handler.RefreshRun(positions, emit)
	case s.cell != nil:
		for _, p := range positions {
			s.cell.Refresh(p, emit)
		}
	default:
		tile.Fallback.RefreshRun(positions, emit)
	}
}

// TileData resolves the visual of every position. Entries for None cells are
// left as the zero Data.
func (d *Driver) TileData(ctx context.Context, q grid.Query, positions []grid.Position, ids []grid.Identity) ([]tile.Data, error) {
	if err := checkLengths(len(positions), ids); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	table := newDispatch(ctx, d.reg, ids)
	out := make([]tile.Data, len(positions))

	d.forEachChunk(ctx, len(positions), func(chunkLogger *slog.Logger, start, end int) {
		runs := 0
		ScanRuns(ids, start, end, func(s, e int, id grid.Identity) {
			runs++
			resolveRun(table.lookup(id), q, positions[s:e], out[s:e])
		})
		chunkLogger.Debug("Tile data chunk done.", "start", start, "end", end, "runs", runs)
	})

	logger.Debug("Tile data batch finished.", "positions", len(positions), "identities", len(table.slots))
	return out, nil
}

func resolveRun(s *slot, q grid.Query, positions []grid.Position, out []tile.Data) {
	switch {
	case s.handler != nil:
		s.handler.ResolveRun(q, positions, out)
	case s.cell != nil:
		for i, p := range positions {
			out[i] = s.cell.Resolve(q, p)
		}
	default:
		tile.Fallback.ResolveRun(q, positions, out)
	}
}

// AnimationData resolves animations. ok[i] reports whether positions[i] is
// animated.
func (d *Driver) AnimationData(ctx context.Context, q grid.Query, positions []grid.Position, ids []grid.Identity) ([]tile.AnimationData, []bool, error) {
	if err := checkLengths(len(positions), ids); err != nil {
		return nil, nil, err
	}
	logger := ctxlog.FromContext(ctx)
	table := newDispatch(ctx, d.reg, ids)
	out := make([]tile.AnimationData, len(positions))
	ok := make([]bool, len(positions))

	d.forEachChunk(ctx, len(positions), func(chunkLogger *slog.Logger, start, end int) {
		ScanRuns(ids, start, end, func(s, e int, id grid.Identity) {
			if a := table.lookup(id).animator; a != nil {
				a.AnimateRun(q, positions[s:e], out[s:e], ok[s:e])
			}
		})
		chunkLogger.Debug("Animation chunk done.", "start", start, "end", end)
	})

	animated := 0
	for _, b := range ok {
		if b {
			animated++
		}
	}
	logger.Debug("Animation batch finished.", "positions", len(positions), "animated", animated)
	return out, ok, nil
}

// ResolveTile resolves a single cell outside any batch.
func (d *Driver) ResolveTile(ctx context.Context, q grid.Query, pos grid.Position, id grid.Identity) tile.Data {
	if id == grid.None {
		return tile.Data{}
	}
	if c, ok := d.reg.LookupCell(id); ok {
		return c.Resolve(q, pos)
	}
	if h, ok := d.reg.Lookup(id); ok {
		out := make([]tile.Data, 1)
		h.ResolveRun(q, []grid.Position{pos}, out)
		return out[0]
	}
	ctxlog.FromContext(ctx).Warn("Tile identity is not registered, using default data.",
		"identity", id, "error", &UnregisteredTileTypeError{Identity: id})
	return tile.Fallback.Data()
}
