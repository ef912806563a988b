package rule

import "github.com/vk/tilesmith/internal/grid"

// Matches reports whether r matches at pos for a tile of identity self, and
// the transform the output sprite must be drawn with. The identity transform
// is tried first; the rule's MatchMode decides what else is tried.
//
// A rotation match at angle a returns a rotation of -a so that the sprite
// compensates for the rotated pattern.
func Matches(r *Rule, q grid.Query, topo Topology, pos grid.Position, self grid.Identity) (bool, grid.Transform) {
	if matchAt(r, q, topo, pos, self, 0, false, false) {
		return true, grid.Transform{}
	}

	step := topo.RotationStep()
	switch r.Mode {
	case Rotated:
		for angle := step; angle < 360; angle += step {
			if matchAt(r, q, topo, pos, self, angle, false, false) {
				return true, grid.Rotate(-angle)
			}
		}
	case MirrorXY:
		if matchAt(r, q, topo, pos, self, 0, true, true) {
			return true, grid.Mirror(true, true)
		}
		if matchAt(r, q, topo, pos, self, 0, true, false) {
			return true, grid.Mirror(true, false)
		}
		if matchAt(r, q, topo, pos, self, 0, false, true) {
			return true, grid.Mirror(false, true)
		}
	case MirrorX:
		if matchAt(r, q, topo, pos, self, 0, true, false) {
			return true, grid.Mirror(true, false)
		}
	case MirrorY:
		if matchAt(r, q, topo, pos, self, 0, false, true) {
			return true, grid.Mirror(false, true)
		}
	case RotatedMirror:
		for angle := 0; angle < 360; angle += step {
			if angle != 0 && matchAt(r, q, topo, pos, self, angle, false, false) {
				return true, grid.Rotate(-angle)
			}
			if matchAt(r, q, topo, pos, self, angle, true, false) {
				t := grid.Rotate(-angle)
				t.FlipX = true
				return true, t
			}
		}
	}
	return false, grid.Transform{}
}

// matchAt tests every pair with the offset mirrored, then rotated.
func matchAt(r *Rule, q grid.Query, topo Topology, pos grid.Position, self grid.Identity, angle int, mirrorX, mirrorY bool) bool {
	n := r.Pairs()
	for i := 0; i < n; i++ {
		off := topo.Mirror(r.Neighbors[i], mirrorX, mirrorY)
		off = topo.Rotate(off, angle)
		other := q.TileAt(topo.Offset(pos, off))
		if !r.Conditions[i].Holds(self, other) {
			return false
		}
	}
	return true
}
