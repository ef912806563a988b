package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/zclconf/go-cty/cty"
)

func TestApplyOverrides_Static(t *testing.T) {
	s := NewStatic(1, "water", "water_0")

	err := ApplyOverrides(s, map[string]cty.Value{
		"sprite":   cty.StringVal("water_deep"),
		"collider": cty.StringVal("none"),
	})

	require.NoError(t, err)
	assert.Equal(t, SpriteID("water_deep"), s.Data().Sprite)
	assert.Equal(t, ColliderNone, s.Data().Collider)
}

func TestApplyOverrides_ConvertsValues(t *testing.T) {
	s := NewStatic(1, "water", "water_0")

	// Numbers convert to strings in cty.
	err := ApplyOverrides(s, map[string]cty.Value{"sprite": cty.NumberIntVal(7)})

	require.NoError(t, err)
	assert.Equal(t, SpriteID("7"), s.Data().Sprite)
}

func TestApplyOverrides_Errors(t *testing.T) {
	s := NewStatic(1, "water", "water_0")

	err := ApplyOverrides(s, map[string]cty.Value{"speed": cty.NumberIntVal(2)})
	var unknown *UnknownPropertyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "speed", unknown.Property)

	err = ApplyOverrides(s, map[string]cty.Value{"sprite": cty.ListValEmpty(cty.String)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property 'sprite'")

	err = ApplyOverrides(s, map[string]cty.Value{"collider": cty.StringVal("mesh")})
	require.Error(t, err)
	assert.Equal(t, SpriteID("water_0"), s.Data().Sprite, "failed overrides leave earlier values alone")
}

func TestStatic_RefreshAndResolve(t *testing.T) {
	s := NewStatic(4, "rock", "rock_0")
	positions := []grid.Position{grid.Pos(0, 0), grid.Pos(3, 1)}

	var emitted []grid.Position
	s.RefreshRun(positions, func(p grid.Position) { emitted = append(emitted, p) })
	assert.Equal(t, positions, emitted)

	out := make([]Data, 2)
	s.ResolveRun(grid.NewMap(), positions, out)
	for _, d := range out {
		assert.Equal(t, SpriteID("rock_0"), d.Sprite)
		assert.Equal(t, White, d.Color)
		assert.Equal(t, FlagsLockAll, d.Flags)
	}
}

func TestParseCollider(t *testing.T) {
	c, err := ParseCollider("Grid")
	require.NoError(t, err)
	assert.Equal(t, ColliderGrid, c)

	_, err = ParseCollider("mesh")
	require.Error(t, err)
}
