package hcl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/testutil"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const tilesHCL = `
rule_tile "grass" {
  id             = 1
  topology       = "rectangular"
  default_sprite = "grass"

  rule {
    id      = 4
    match   = "rotated"
    output  = "random"
    sprites = ["grass_edge_a", "grass_edge_b"]

    neighbor {
      x  = 1
      y  = 0
      is = "not_this"
    }
    neighbor {
      x  = 0
      y  = 1
      is = "this"
    }
  }

  rule {
    enabled   = false
    output    = "animation"
    sprites   = ["sway_0", "sway_1"]
    min_speed = 0.5
    max_speed = 2
  }
}

static_tile "rock" {
  id     = 3
  sprite = "rock"
}
`

const moreHCL = `
autotile "wall" {
  id                  = 2
  mask                = "3x3"
  random              = true
  physics_shape_check = true
  no_physics_shape    = ["wall_single"]

  texture "walls.png" {}
  texture "walls_hd.png" {
    scale = 2
  }

  entry {
    mask    = 16
    sprites = ["wall_single"]
    texture = "walls.png"
  }
}

derived_tile "dry_grass" {
  id   = 5
  base = "grass"

  properties {
    default_sprite = "dry"
    rule_sprites = {
      "4" = ["dry_edge"]
    }
  }
}

paint "grass" {
  x     = -2
  width = 4
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// ctyAsJSON compares cty values by their JSON encoding, so an object read
// back from HCL equals the map it was written from.
var ctyAsJSON = cmp.Comparer(func(a, b cty.Value) bool {
	ja, errA := ctyjson.SimpleJSONValue{Value: a}.MarshalJSON()
	jb, errB := ctyjson.SimpleJSONValue{Value: b}.MarshalJSON()
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
})

func TestLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"tiles.hcl":      tilesHCL,
		"more/more.hcl":  moreHCL,
		"more/notes.txt": "not hcl",
	})
	ctx, _ := testutil.LogContext()

	// --- Act ---
	m, err := NewLoader().Load(ctx, dir, filepath.Join(dir, "missing"))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, m.RuleTiles, 1)
	grass := m.RuleTiles[0]
	assert.Equal(t, uint32(1), grass.ID)
	require.Len(t, grass.Rules, 2)

	first := grass.Rules[0]
	assert.Equal(t, 4, first.ID)
	assert.Equal(t, "rotated", first.Match)
	assert.Equal(t, []config.Neighbor{{X: 1, Y: 0, Condition: "not_this"}, {X: 0, Y: 1, Condition: "this"}}, first.Neighbors)
	assert.Equal(t, 0.5, first.NoiseScale, "omitted attributes get defaults")
	assert.True(t, first.Enabled)

	second := grass.Rules[1]
	assert.Equal(t, 2, second.ID, "rules without id are numbered by position")
	assert.False(t, second.Enabled)
	assert.Equal(t, 0.5, second.MinSpeed)
	assert.Equal(t, "fixed", second.Match)

	require.Len(t, m.AutoTiles, 1)
	wall := m.AutoTiles[0]
	assert.Equal(t, []config.Texture{{Name: "walls.png", Scale: 1}, {Name: "walls_hd.png", Scale: 2}}, wall.Textures)
	assert.Equal(t, []config.Entry{{Mask: 16, Sprites: []string{"wall_single"}, Texture: "walls.png"}}, wall.Entries)

	require.Len(t, m.DerivedTiles, 1)
	props := m.DerivedTiles[0].Properties
	assert.Equal(t, cty.StringVal("dry"), props["default_sprite"])
	assert.True(t, props["rule_sprites"].Type().IsObjectType())

	assert.Equal(t, []*config.Paint{{Tile: "grass", X: -2, Width: 4, Height: 1}}, m.Paint)
	assert.NoError(t, m.Validate())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `rule_tile "x" {`, "failed to parse HCL file"},
		{"missing id", `static_tile "x" {}`, "failed to decode HCL file"},
		{"wrong type", `paint "x" { width = "wide" }`, "failed to decode HCL file"},
		{"non-literal property", `
derived_tile "x" {
  id   = 2
  base = "y"
  properties {
    default_sprite = var.name
  }
}`, "property 'default_sprite'"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := writeFiles(t, map[string]string{"bad.hcl": tc.content})

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeFiles(t, map[string]string{"a.hcl": tilesHCL, "b.hcl": moreHCL})
	ctx, _ := testutil.LogContext()
	original, err := NewLoader().Load(ctx, filepath.Join(dir, "a.hcl"), filepath.Join(dir, "b.hcl"))
	require.NoError(t, err)

	// --- Act ---
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(ctx, original, &buf))
	out := filepath.Join(t.TempDir(), "export.hcl")
	require.NoError(t, os.WriteFile(out, buf.Bytes(), 0o644))
	reloaded, err := NewLoader().Load(ctx, out)

	// --- Assert ---
	require.NoError(t, err, "exported file:\n%s", buf.String())
	if diff := cmp.Diff(original, reloaded, ctyAsJSON); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
