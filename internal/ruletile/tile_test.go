package ruletile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/zclconf/go-cty/cty"
)

const grass grid.Identity = 1

// edgeTile shows "edge" when a grass cell is to the right and "lonely"
// otherwise.
func edgeTile(mode rule.MatchMode) *Tile {
	t := New(grass, "grass", rule.Rect{})
	t.DefaultSprite = "lonely"

	r := rule.NewRule(1)
	r.Mode = mode
	r.Set(grid.Pos(1, 0), rule.This)
	r.Output.Sprites = []tile.SpriteID{"edge"}
	t.AddRule(r)
	return t
}

func TestResolve_DefaultsWhenNothingMatches(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Fixed)
	m := grid.NewMap()
	m.Set(grid.Pos(0, 0), grass)

	d := tl.Resolve(m, grid.Pos(0, 0))

	assert.Equal(t, tile.SpriteID("lonely"), d.Sprite)
	assert.Equal(t, tile.ColliderSprite, d.Collider)
	assert.True(t, d.Transform.IsIdentity())
}

func TestResolve_RotatedMatchCarriesTransform(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Rotated)
	m := grid.NewMap()
	m.Set(grid.Pos(0, 0), grass)
	m.Set(grid.Pos(0, -1), grass)

	d := tl.Resolve(m, grid.Pos(0, 0))

	// (1,0) rotated by 90 is (0,-1).
	assert.Equal(t, tile.SpriteID("edge"), d.Sprite)
	assert.Equal(t, grid.Rotate(-90), d.Transform)
}

func TestResolve_SkipsDisabledRules(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Fixed)
	r := tl.Rules()[0]
	r.Enabled = false
	require.True(t, tl.ReplaceRule(r))
	m := grid.NewMap()
	m.Set(grid.Pos(0, 0), grass)
	m.Set(grid.Pos(1, 0), grass)

	assert.Equal(t, tile.SpriteID("lonely"), tl.Resolve(m, grid.Pos(0, 0)).Sprite)
}

func TestRefresh_UsesNeighborCache(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Fixed)

	var got []grid.Position
	tl.RefreshRun([]grid.Position{grid.Pos(5, 5)}, func(p grid.Position) { got = append(got, p) })
	assert.Equal(t, []grid.Position{grid.Pos(5, 5), grid.Pos(4, 5)}, got)

	// Mutations drop the cache.
	r := rule.NewRule(2)
	r.Set(grid.Pos(0, 1), rule.NotThis)
	tl.AddRule(r)

	got = nil
	tl.RefreshRun([]grid.Position{grid.Pos(5, 5)}, func(p grid.Position) { got = append(got, p) })
	assert.ElementsMatch(t, []grid.Position{grid.Pos(5, 5), grid.Pos(4, 5), grid.Pos(5, 4)}, got)

	require.True(t, tl.RemoveRule(2))
	assert.Len(t, tl.Neighbors().Offsets, 1)
	assert.False(t, tl.RemoveRule(2))
}

func TestNeighbors_ConcurrentBuild(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Rotated)
	var wg sync.WaitGroup
	caches := make([]*rule.NeighborCache, 16)
	for i := range caches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caches[i] = tl.Neighbors()
		}()
	}
	wg.Wait()

	for _, c := range caches {
		assert.Len(t, c.Offsets, 4)
	}
}

func TestAnimate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tl := New(grass, "water", rule.Rect{})
	r := rule.NewRule(1)
	r.Output.Mode = rule.Animation
	r.Output.Sprites = []tile.SpriteID{"w0", "w1", "w2"}
	r.Output.MinSpeed = 0.5
	r.Output.MaxSpeed = 2
	tl.AddRule(r)
	tl.Enable()
	m := grid.NewMap()
	m.Set(grid.Pos(0, 0), grass)

	// --- Act ---
	out := make([]tile.AnimationData, 2)
	ok := make([]bool, 2)
	tl.AnimateRun(m, []grid.Position{grid.Pos(0, 0), grid.Pos(0, 0)}, out, ok)

	// --- Assert ---
	require.Equal(t, []bool{true, true}, ok)
	assert.Equal(t, []tile.SpriteID{"w0", "w1", "w2"}, out[0].Sprites)
	assert.GreaterOrEqual(t, out[0].Speed, float32(0.5))
	assert.Less(t, out[0].Speed, float32(2))
	assert.NotEqual(t, out[0].Speed, out[1].Speed, "the stream advances between calls")

	// Single output has no animation.
	_, animated := edgeTile(rule.Fixed).Animate(m, grid.Pos(0, 0))
	assert.False(t, animated)
}

func TestOverride(t *testing.T) {
	t.Parallel()

	base := edgeTile(rule.Fixed)
	derived := base.Clone(9, "dry_grass")

	err := tile.ApplyOverrides(derived, map[string]cty.Value{
		"default_sprite": cty.StringVal("dry_lonely"),
		"rule_sprites": cty.MapVal(map[string]cty.Value{
			"1": cty.ListVal([]cty.Value{cty.StringVal("dry_edge")}),
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, tile.SpriteID("dry_lonely"), derived.DefaultSprite)
	assert.Equal(t, []tile.SpriteID{"dry_edge"}, derived.Rules()[0].Output.Sprites)
	assert.Equal(t, []tile.SpriteID{"edge"}, base.Rules()[0].Output.Sprites, "the base tile is untouched")
	assert.Equal(t, grid.Identity(9), derived.Identity())

	err = tile.ApplyOverrides(derived, map[string]cty.Value{
		"rule_game_objects": cty.MapVal(map[string]cty.Value{"7": cty.StringVal("x")}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule with ID 7")
}

func TestInsertRule(t *testing.T) {
	tl := edgeTile(rule.Fixed)

	require.Error(t, tl.InsertRule(5, rule.NewRule(2)))
	require.NoError(t, tl.InsertRule(0, rule.NewRule(tl.NextRuleID())))

	assert.Equal(t, 2, tl.Rules()[0].ID)
	assert.Equal(t, 3, tl.NextRuleID())
}

func TestSetTopologyAndDisable_DropCache(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Fixed)
	before := tl.Neighbors()

	tl.SetTopology(rule.Hex{})
	afterTopology := tl.Neighbors()
	tl.Disable()
	afterDisable := tl.Neighbors()

	assert.Equal(t, "hexagonal", tl.Topology().Name())
	assert.NotSame(t, before, afterTopology)
	assert.NotSame(t, afterTopology, afterDisable)
	assert.Equal(t, before.Offsets, afterDisable.Offsets)
}

func TestRules_EditsGoThroughReplaceRule(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tl := edgeTile(rule.Fixed)
	require.Len(t, tl.Neighbors().Offsets, 1)

	// --- Act ---
	r := tl.Rules()[0]
	r.Set(grid.Pos(0, 2), rule.This)
	beforeReplace := tl.Neighbors()
	replaced := tl.ReplaceRule(r)
	afterReplace := tl.Neighbors()

	// --- Assert ---
	assert.Len(t, beforeReplace.Offsets, 1, "a returned rule is a copy")
	require.True(t, replaced)
	assert.ElementsMatch(t, []grid.Position{grid.Pos(1, 0), grid.Pos(0, 2)}, afterReplace.Offsets)

	var got []grid.Position
	tl.RefreshRun([]grid.Position{grid.Pos(5, 5)}, func(p grid.Position) { got = append(got, p) })
	assert.Contains(t, got, grid.Pos(5, 3))

	assert.False(t, tl.ReplaceRule(rule.NewRule(42)))
}

func TestAddRule_KeepsOwnCopy(t *testing.T) {
	t.Parallel()

	tl := New(grass, "grass", rule.Rect{})
	r := rule.NewRule(1)
	r.Set(grid.Pos(1, 0), rule.This)
	tl.AddRule(r)
	require.Len(t, tl.Neighbors().Offsets, 1)

	r.Set(grid.Pos(-1, 0), rule.This)

	assert.Len(t, tl.Neighbors().Offsets, 1)
	assert.Len(t, tl.Rules()[0].Neighbors, 1)
}

func TestOverride_DefaultsKeptOnDecodeError(t *testing.T) {
	t.Parallel()

	tl := edgeTile(rule.Fixed)
	tl.DefaultGameObject = "grass_prefab"

	require.Error(t, tl.Override("default_sprite", cty.UnknownVal(cty.String)))
	require.Error(t, tl.Override("default_game_object", cty.UnknownVal(cty.String)))

	assert.Equal(t, tile.SpriteID("lonely"), tl.DefaultSprite)
	assert.Equal(t, tile.ObjectID("grass_prefab"), tl.DefaultGameObject)
}
