package variant

import (
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
)

const (
	spriteNoiseOffset    = 100000
	transformNoiseOffset = 200000
)

// NoiseAt samples Noise01 at the position shifted by offset and scaled.
func NoiseAt(pos grid.Position, scale, offset float64) float64 {
	return Noise01((float64(pos.X)+offset)*scale, (float64(pos.Y)+offset)*scale)
}

// NoiseIndex picks an index in [0, n) from the noise at pos. It returns -1
// when n is 0.
func NoiseIndex(pos grid.Position, scale float64, n int) int {
	if n <= 0 {
		return -1
	}
	return clampIndex(int(NoiseAt(pos, scale, spriteNoiseOffset)*float64(n)), n)
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// ResolveOutput turns a matched rule's output into tile data. matched is the
// transform returned by the matcher.
func ResolveOutput(out *rule.Output, pos grid.Position, matched grid.Transform, topo rule.Topology) tile.Data {
	d := tile.DefaultData()
	d.GameObject = out.GameObject
	d.Collider = out.Collider
	d.Transform = matched

	switch out.Mode {
	case rule.Random:
		if i := NoiseIndex(pos, out.NoiseScale, len(out.Sprites)); i >= 0 {
			d.Sprite = out.Sprites[i]
		}
		if out.RandomTransform != rule.Fixed {
			d.Transform = grid.Compose(matched, RandomTransform(out.RandomTransform, pos, out.NoiseScale, topo))
		}
	default:
		if len(out.Sprites) > 0 {
			d.Sprite = out.Sprites[0]
		}
	}
	return d
}

// RandomTransform orients a cell by noise. The same position always gets the
// same transform.
func RandomTransform(mode rule.MatchMode, pos grid.Position, scale float64, topo rule.Topology) grid.Transform {
	n := NoiseAt(pos, scale, transformNoiseOffset)
	steps := 360 / topo.RotationStep()

	switch mode {
	case rule.MirrorXY:
		d := n - 0.5
		if d < 0 {
			d = -d
		}
		return grid.Mirror(d <= 0.25, n >= 0.5)
	case rule.MirrorX:
		return grid.Mirror(n >= 0.5, false)
	case rule.MirrorY:
		return grid.Mirror(false, n >= 0.5)
	case rule.Rotated:
		i := clampIndex(int(n*float64(steps)), steps)
		return grid.Rotate(-i * topo.RotationStep())
	case rule.RotatedMirror:
		i := clampIndex(int(n*float64(2*steps)), 2*steps)
		t := grid.Rotate(-(i / 2) * topo.RotationStep())
		t.FlipX = i%2 == 1
		return t
	}
	return grid.Transform{}
}
