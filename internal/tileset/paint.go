package tileset

import (
	"fmt"

	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/grid"
)

// Paint fills a new grid with the given regions, in order. Later regions
// overwrite earlier ones.
func (s *Set) Paint(regions []*config.Paint) (*grid.Map, error) {
	m := grid.NewMap()
	for i, p := range regions {
		h, ok := s.byName[p.Tile]
		if !ok {
			return nil, fmt.Errorf("paint #%d: tile '%s' is not defined", i+1, p.Tile)
		}
		b := grid.Bounds{XMin: p.X, YMin: p.Y, XMax: p.X + p.Width - 1, YMax: p.Y + p.Height - 1}
		b.Each(func(_ int, pos grid.Position) {
			pos.Z = p.Layer
			m.Set(pos, h.Identity())
		})
	}
	return m, nil
}
