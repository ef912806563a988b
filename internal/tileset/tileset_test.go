package tileset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/autotile"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/ruletile"
	"github.com/vk/tilesmith/internal/testutil"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/zclconf/go-cty/cty"
)

func sampleModel() *config.Model {
	edge := config.NewRule(1)
	edge.Sprites = []string{"grass_edge"}
	edge.Neighbors = []config.Neighbor{{X: 1, Y: 0, Condition: "not_this"}}

	return &config.Model{
		RuleTiles: []*config.RuleTile{{
			Name:          "grass",
			ID:            1,
			Topology:      "rectangular",
			DefaultSprite: "grass",
			Rules:         []*config.Rule{edge},
		}},
		AutoTiles: []*config.AutoTile{{
			Name:              "wall",
			ID:                2,
			Mask:              "3x3",
			PhysicsShapeCheck: true,
			NoPhysicsShape:    []string{"wall_single"},
			Textures:          []config.Texture{{Name: "walls.png", Scale: 2}},
			Entries:           []config.Entry{{Mask: 16, Sprites: []string{"wall_single"}, Texture: "walls.png"}},
		}},
		StaticTiles: []*config.StaticTile{{Name: "rock", ID: 3, Sprite: "rock", GameObject: "rock_prefab"}},
		DerivedTiles: []*config.DerivedTile{
			{Name: "old_moss", ID: 6, Base: "mossy_wall", Properties: map[string]cty.Value{
				"default_sprite": cty.StringVal("old"),
			}},
			{Name: "mossy_wall", ID: 5, Base: "wall", Properties: map[string]cty.Value{
				"mask_sprites": cty.ObjectVal(map[string]cty.Value{
					"16": cty.TupleVal([]cty.Value{cty.StringVal("moss_single")}),
				}),
			}},
			{Name: "boulder", ID: 4, Base: "rock", Properties: map[string]cty.Value{
				"collider": cty.StringVal("none"),
			}},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.LogContext()

	// --- Act ---
	s, err := Build(ctx, sampleModel())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, s.Handlers(), 6)
	assert.Contains(t, logs.String(), "Tile built.")

	h, ok := s.Handler("grass")
	require.True(t, ok)
	grass := h.(*ruletile.Tile)
	assert.Equal(t, "rectangular", grass.Topology().Name())
	require.Len(t, grass.Rules(), 1)
	r := grass.Rules()[0]
	assert.Equal(t, []grid.Position{grid.Pos(1, 0)}, r.Neighbors)
	assert.Equal(t, []rule.Condition{rule.NotThis}, r.Conditions)
	assert.Equal(t, []tile.SpriteID{"grass_edge"}, r.Output.Sprites)

	h, _ = s.Handler("wall")
	wall := h.(*autotile.Tile)
	assert.Equal(t, mask.Mode3x3, wall.Table.Mode())
	assert.Equal(t, 2.0, wall.Table.TextureScale("walls.png"))

	h, _ = s.Handler("old_moss")
	old := h.(*autotile.Tile)
	assert.Equal(t, grid.Identity(6), old.Identity())
	assert.Equal(t, tile.SpriteID("old"), old.DefaultSprite)
	assert.Equal(t, []autotile.Candidate{{Sprite: "moss_single", Texture: "walls.png"}}, old.Table.Candidates(16))

	h, _ = s.Handler("boulder")
	boulder := h.(*tile.Static).Data()
	assert.Equal(t, tile.SpriteID("rock"), boulder.Sprite)
	assert.Equal(t, tile.ObjectID("rock_prefab"), boulder.GameObject)
	assert.Equal(t, tile.ColliderNone, boulder.Collider)
}

func TestRegisterAndResolve(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testutil.LogContext()
	m := sampleModel()
	m.Paint = []*config.Paint{
		{Tile: "grass", X: 0, Y: 0, Width: 2, Height: 1},
		{Tile: "mossy_wall", X: 5, Y: 5, Width: 1, Height: 1},
		{Tile: "wall", X: 8, Y: 0, Width: 1, Height: 1},
	}
	s, err := Build(ctx, m)
	require.NoError(t, err)
	reg := registry.New()

	// --- Act ---
	s.Register(reg)
	g, err := s.Paint(m.Paint)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 6, reg.Len())
	resolve := func(p grid.Position) tile.Data {
		h, ok := reg.Lookup(g.TileAt(p))
		require.True(t, ok, "no handler at %v", p)
		out := make([]tile.Data, 1)
		h.ResolveRun(g, []grid.Position{p}, out)
		return out[0]
	}
	assert.Equal(t, tile.SpriteID("grass"), resolve(grid.Pos(0, 0)).Sprite)
	assert.Equal(t, tile.SpriteID("grass_edge"), resolve(grid.Pos(1, 0)).Sprite)
	assert.Equal(t, tile.SpriteID("moss_single"), resolve(grid.Pos(5, 5)).Sprite)

	single := resolve(grid.Pos(8, 0))
	assert.Equal(t, tile.SpriteID("wall_single"), single.Sprite)
	assert.Equal(t, tile.ColliderNone, single.Collider, "wall_single has no physics shape")
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(m *config.Model)
		want   []string
	}{
		{
			name: "bad topology and condition",
			mutate: func(m *config.Model) {
				m.RuleTiles[0].Topology = "triangular"
				m.AutoTiles[0].Entries[0].Mask = 1000
			},
			want: []string{"rule tile 'grass'", "autotile 'wall'"},
		},
		{
			name: "bad rule",
			mutate: func(m *config.Model) {
				m.RuleTiles[0].Rules[0].Neighbors[0].Condition = "maybe"
				m.RuleTiles[0].Rules[0].Output = "sometimes"
			},
			want: []string{"rule tile 'grass' rule 1", "unknown output mode"},
		},
		{
			name: "unknown property",
			mutate: func(m *config.Model) {
				m.DerivedTiles[2].Properties["colour"] = cty.StringVal("red")
			},
			want: []string{"derived tile 'boulder'", "colour"},
		},
		{
			name: "missing base",
			mutate: func(m *config.Model) {
				m.DerivedTiles[2].Base = "nothing"
			},
			want: []string{"base tile 'nothing' is not defined"},
		},
		{
			name: "cycle",
			mutate: func(m *config.Model) {
				m.DerivedTiles[1].Base = "old_moss"
			},
			want: []string{"base cycle"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := sampleModel()
			tc.mutate(m)

			ctx, _ := testutil.LogContext()
			_, err := Build(ctx, m)

			require.Error(t, err)
			for _, w := range tc.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestPaint(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext()
	s, err := Build(ctx, sampleModel())
	require.NoError(t, err)

	g, err := s.Paint([]*config.Paint{
		{Tile: "grass", X: -1, Y: -1, Width: 3, Height: 3},
		{Tile: "rock", X: 0, Y: 0, Width: 1, Height: 1},
		{Tile: "boulder", X: 0, Y: 0, Width: 1, Height: 1, Layer: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, 10, g.Len())
	assert.Equal(t, grid.Identity(3), g.TileAt(grid.Pos(0, 0)))
	assert.Equal(t, grid.Identity(1), g.TileAt(grid.Pos(-1, 1)))
	assert.Equal(t, grid.Identity(4), g.TileAt(grid.Position{X: 0, Y: 0, Z: 1}))

	_, err = s.Paint([]*config.Paint{{Tile: "lava", Width: 1, Height: 1}})
	assert.ErrorContains(t, err, "paint #1: tile 'lava' is not defined")
}

func TestBuild_DropsCandidatesFromUnregisteredTextures(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.LogContext()
	m := sampleModel()
	wall := m.AutoTiles[0]
	wall.DefaultSprite = "wall_default"
	wall.Entries = []config.Entry{
		{Mask: 16, Sprites: []string{"ghost_sprite"}, Texture: "removed.png"},
		{Mask: 48, Sprites: []string{"wall_left"}, Texture: "walls.png"},
	}

	// --- Act ---
	s, err := Build(ctx, m)

	// --- Assert ---
	require.NoError(t, err)
	h, ok := s.Handler("wall")
	require.True(t, ok)
	at := h.(*autotile.Tile)
	assert.Empty(t, at.Table.Candidates(16))
	assert.Len(t, at.Table.Candidates(48), 1)

	g := grid.NewMap()
	g.Set(grid.Pos(0, 0), grid.Identity(wall.ID))
	assert.Equal(t, tile.SpriteID("wall_default"), at.Resolve(g, grid.Pos(0, 0)).Sprite)

	assert.Contains(t, logs.String(), `msg="Autotile entries dropped during validation."`)
	assert.Contains(t, logs.String(), "candidates=1")
}
