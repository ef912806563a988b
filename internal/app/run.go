package app

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/vk/tilesmith/internal/batch"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/hcl"
	"github.com/vk/tilesmith/internal/preview"
	"github.com/vk/tilesmith/internal/tile"
)

// Frame is one resolved view of the painted grid. Positions are the
// non-empty refreshed cells, grouped by identity; the other slices are
// parallel to it.
type Frame struct {
	Grid       *grid.Map
	Refreshed  int
	Positions  []grid.Position
	IDs        []grid.Identity
	Data       []tile.Data
	Animations []tile.AnimationData
	Animated   []bool
}

// Resolve paints the authored regions into a fresh grid, refreshes every
// painted cell and resolves the visuals of all cells the refresh reached.
func (a *App) Resolve(ctx context.Context) (*Frame, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	g, err := a.tiles.Paint(a.model.Paint)
	if err != nil {
		return nil, err
	}
	painted, paintedIDs := g.Cells()
	a.logger.Debug("Grid painted.", "cells", len(painted))

	driver := batch.New(a.registry, batch.Options{Workers: a.config.Workers, ChunkSize: a.config.ChunkSize})
	dirty, err := driver.Refresh(ctx, painted, nil, paintedIDs)
	if err != nil {
		return nil, fmt.Errorf("refresh failed: %w", err)
	}

	type cell struct {
		pos grid.Position
		id  grid.Identity
	}
	cells := make([]cell, 0, len(dirty))
	for _, p := range dirty {
		if id := g.TileAt(p); id != grid.None {
			cells = append(cells, cell{p, id})
		}
	}
	slices.SortFunc(cells, func(x, y cell) int {
		return cmp.Or(cmp.Compare(x.id, y.id), x.pos.Compare(y.pos))
	})

	f := &Frame{Grid: g, Refreshed: len(dirty)}
	for _, c := range cells {
		f.Positions = append(f.Positions, c.pos)
		f.IDs = append(f.IDs, c.id)
	}
	if f.Data, err = driver.TileData(ctx, g, f.Positions, f.IDs); err != nil {
		return nil, fmt.Errorf("tile data failed: %w", err)
	}
	if f.Animations, f.Animated, err = driver.AnimationData(ctx, g, f.Positions, f.IDs); err != nil {
		return nil, fmt.Errorf("animation data failed: %w", err)
	}
	return f, nil
}

// Run resolves the painted grid, prints its preview and, if configured,
// exports the loaded assets.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	f, err := a.Resolve(ctx)
	if err != nil {
		return err
	}

	cells := make([]preview.Cell, len(f.Positions))
	animated := 0
	for i, p := range f.Positions {
		cells[i] = preview.Cell{
			Pos:      p,
			Identity: f.IDs[i],
			Tile:     a.tileName(f.IDs[i]),
			Sprite:   f.Data[i].Sprite,
			Animated: f.Animated[i],
		}
		if f.Animated[i] {
			animated++
		}
	}
	r := preview.New(a.outW, preview.Options{NoColor: a.config.NoColor})
	if _, err := fmt.Fprint(a.outW, r.Render(cells)); err != nil {
		return err
	}
	a.logger.Info("Tiles resolved.", "cells", len(cells), "refreshed", f.Refreshed, "animated", animated)

	if a.config.ExportPath != "" {
		if err := a.export(ctx); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		a.logger.Info("Assets exported.", "path", a.config.ExportPath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) export(ctx context.Context) (err error) {
	out, err := os.Create(a.config.ExportPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return hcl.NewWriter().Write(ctx, a.model, out)
}

func (a *App) tileName(id grid.Identity) string {
	if h, ok := a.registry.Lookup(id); ok {
		if n, ok := h.(interface{ Name() string }); ok {
			return n.Name()
		}
	}
	return ""
}
