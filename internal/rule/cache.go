package rule

import (
	"github.com/vk/tilesmith/internal/grid"
)

// NeighborCache is every offset any rule of a tile can look at, including the
// transformed variants its MatchMode tries, and their bounds. It is derived
// data: rebuild it whenever the rules change.
type NeighborCache struct {
	Offsets []grid.Position
	Bounds  grid.Bounds
}

// BuildNeighborCache collects the offsets of rules under topo. Offsets keep
// first-seen order so refresh output is stable.
func BuildNeighborCache(rules []*Rule, topo Topology) *NeighborCache {
	c := &NeighborCache{Bounds: grid.Unit}
	seen := make(map[grid.Position]struct{})
	add := func(p grid.Position) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		c.Offsets = append(c.Offsets, p)
		c.Bounds = c.Bounds.Encapsulate(p)
	}

	step := topo.RotationStep()
	for _, r := range rules {
		for i := 0; i < r.Pairs(); i++ {
			off := r.Neighbors[i]
			add(off)
			switch r.Mode {
			case Rotated:
				for angle := step; angle < 360; angle += step {
					add(topo.Rotate(off, angle))
				}
			case MirrorXY:
				add(topo.Mirror(off, true, true))
				add(topo.Mirror(off, true, false))
				add(topo.Mirror(off, false, true))
			case MirrorX:
				add(topo.Mirror(off, true, false))
			case MirrorY:
				add(topo.Mirror(off, false, true))
			case RotatedMirror:
				mirrored := topo.Mirror(off, true, false)
				for angle := 0; angle < 360; angle += step {
					add(topo.Rotate(off, angle))
					add(topo.Rotate(mirrored, angle))
				}
			}
		}
	}
	return c
}
