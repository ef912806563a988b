package variant

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
)

func TestNoise_RangeAndLattice(t *testing.T) {
	t.Parallel()

	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			assert.Zero(t, Noise(float64(x), float64(y)), "lattice point (%d,%d)", x, y)

			n := Noise(float64(x)*0.37+0.11, float64(y)*0.53+0.29)
			assert.GreaterOrEqual(t, n, -1.0)
			assert.LessOrEqual(t, n, 1.0)
		}
	}
}

func TestNoise_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[float64]struct{})
	for i := 0; i < 50; i++ {
		seen[Noise(float64(i)*0.31+0.5, 0.25)] = struct{}{}
	}
	assert.Greater(t, len(seen), 10)
}

func TestNoise_ConcurrentSamplesAgree(t *testing.T) {
	t.Parallel()

	want := Noise(100000.37, 100000.53)
	var wg sync.WaitGroup
	got := make([]float64, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Noise(100000.37, 100000.53)
		}()
	}
	wg.Wait()

	for _, g := range got {
		assert.Equal(t, want, g)
	}
}

func TestNoiseIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, NoiseIndex(grid.Pos(0, 0), 0.5, 0))
	for x := -30; x < 30; x++ {
		for y := -30; y < 30; y++ {
			i := NoiseIndex(grid.Pos(x, y), 0.37, 3)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, 3)
		}
	}
}

func TestResolveOutput_RandomIsDeterministic(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := rule.NewRule(1).Output
	out.Mode = rule.Random
	out.NoiseScale = 0.37
	out.Sprites = []tile.SpriteID{"a", "b", "c", "d"}

	used := make(map[tile.SpriteID]struct{})
	for x := 0; x < 40; x++ {
		pos := grid.Pos(x, x*3)

		// --- Act ---
		first := ResolveOutput(&out, pos, grid.Transform{}, rule.Rect{})
		second := ResolveOutput(&out, pos, grid.Transform{}, rule.Rect{})

		// --- Assert ---
		require.Equal(t, first, second)
		used[first.Sprite] = struct{}{}
	}
	assert.Greater(t, len(used), 1, "noise should spread choices across candidates")
}

func TestResolveOutput_SingleAndEmpty(t *testing.T) {
	t.Parallel()

	out := rule.NewRule(1).Output
	out.Sprites = []tile.SpriteID{"first", "second"}
	out.GameObject = "torch"
	out.Collider = tile.ColliderGrid

	d := ResolveOutput(&out, grid.Pos(3, 4), grid.Rotate(90), rule.Rect{})
	assert.Equal(t, tile.SpriteID("first"), d.Sprite)
	assert.Equal(t, tile.ObjectID("torch"), d.GameObject)
	assert.Equal(t, tile.ColliderGrid, d.Collider)
	assert.Equal(t, grid.Rotate(90), d.Transform)

	out.Sprites = nil
	out.Mode = rule.Random
	d = ResolveOutput(&out, grid.Pos(3, 4), grid.Transform{}, rule.Rect{})
	assert.Equal(t, tile.SpriteID(""), d.Sprite)
}

func TestRandomTransform(t *testing.T) {
	t.Parallel()

	pos := grid.Pos(7, -3)
	assert.Equal(t,
		RandomTransform(rule.Rotated, pos, 0.37, rule.Rect{}),
		RandomTransform(rule.Rotated, pos, 0.37, rule.Rect{}))
	assert.Equal(t, grid.Transform{}, RandomTransform(rule.Fixed, pos, 0.37, rule.Rect{}))

	rotations := make(map[int]struct{})
	for x := 0; x < 60; x++ {
		tr := RandomTransform(rule.Rotated, grid.Pos(x, 2*x), 0.37, rule.Hex{})
		assert.Zero(t, tr.Rotation%60)
		assert.False(t, tr.FlipX)
		rotations[tr.Rotation] = struct{}{}
	}
	assert.Greater(t, len(rotations), 1)
}

func TestPickSeed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PickSeed(grid.Pos(1, 2), 3), PickSeed(grid.Pos(1, 2), 3))
	assert.NotEqual(t, PickSeed(grid.Pos(1, 2), 3), PickSeed(grid.Pos(2, 1), 3))
	assert.NotEqual(t, PickSeed(grid.Pos(1, 2), 3), PickSeed(grid.Pos(1, 2), 4))

	a := NewRand(PickSeed(grid.Pos(5, 5), 1)).IntN(1000)
	b := NewRand(PickSeed(grid.Pos(5, 5), 1)).IntN(1000)
	assert.Equal(t, a, b)
}

func TestStream_ContinuesAcrossCalls(t *testing.T) {
	t.Parallel()

	s := NewStream(9)
	first := s.Float32(1, 2)
	second := s.Float32(1, 2)

	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, first, float32(1))
	assert.Less(t, first, float32(2))

	// A fresh stream for the same identity replays the same sequence.
	replay := NewStream(9)
	assert.Equal(t, first, replay.Float32(1, 2))
	assert.Equal(t, second, replay.Float32(1, 2))

	assert.Equal(t, float32(3), s.Float32(3, 3))
}
