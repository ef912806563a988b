package ruletile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
)

func TestTemplate_CaptureAndApply(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := edgeTile(rule.Rotated)
	srcSheet := []SpriteRect{{Sprite: "lonely", X: 0, Y: 0}, {Sprite: "edge", X: 16, Y: 0}}

	tpl, err := Capture(src, 32, 16, srcSheet)
	require.NoError(t, err)

	dst := New(5, "snow", rule.Rect{})
	dstSheet := []SpriteRect{{Sprite: "snow_lonely", X: 0, Y: 0}, {Sprite: "snow_edge", X: 32, Y: 0}}

	// --- Act ---
	err = tpl.Apply(dst, 64, 32, dstSheet)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, tile.SpriteID("snow_lonely"), dst.DefaultSprite)
	require.Len(t, dst.Rules(), 1)
	assert.Equal(t, []tile.SpriteID{"snow_edge"}, dst.Rules()[0].Output.Sprites)
	assert.Equal(t, rule.Rotated, dst.Rules()[0].Mode)
	assert.Equal(t, []tile.SpriteID{"edge"}, src.Rules()[0].Output.Sprites)
}

func TestTemplate_TopologyMismatch(t *testing.T) {
	t.Parallel()

	tpl, err := Capture(edgeTile(rule.Fixed), 32, 16, []SpriteRect{{Sprite: "lonely"}, {Sprite: "edge", X: 16}})
	require.NoError(t, err)

	hex := New(5, "hex", rule.Hex{})
	err = tpl.Apply(hex, 32, 16, nil)

	var mismatch *tile.ConfigurationMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "hexagonal", mismatch.Want)
	assert.Equal(t, "rectangular", mismatch.Got)
	assert.Empty(t, hex.Rules())
}

func TestTemplate_MissingSpriteLeavesTileAlone(t *testing.T) {
	t.Parallel()

	tpl, err := Capture(edgeTile(rule.Fixed), 32, 16, []SpriteRect{{Sprite: "lonely"}, {Sprite: "edge", X: 16}})
	require.NoError(t, err)

	dst := edgeTile(rule.Fixed)
	err = tpl.Apply(dst, 32, 16, []SpriteRect{{Sprite: "only_default"}})

	require.Error(t, err)
	assert.Equal(t, tile.SpriteID("lonely"), dst.DefaultSprite)
	assert.Equal(t, []tile.SpriteID{"edge"}, dst.Rules()[0].Output.Sprites)

	_, err = Capture(edgeTile(rule.Fixed), 32, 16, nil)
	require.Error(t, err)
}
