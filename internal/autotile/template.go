package autotile

import (
	"fmt"

	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/tile"
)

// SpriteRect places a sprite inside its source texture.
type SpriteRect struct {
	Sprite tile.SpriteID
	X, Y   int
}

// TemplateSprite is a texture location and the mask the sprite found there
// is registered under.
type TemplateSprite struct {
	X, Y int
	Mask uint32
}

// Template records which region of a sprite sheet serves which mask, so a
// sheet with the same layout can fill a table in one step.
type Template struct {
	Width   int
	Height  int
	Mode    mask.Mode
	Sprites []TemplateSprite
}

// Capture builds a template from the candidates of t cut from texture tex.
// Candidates of other textures are skipped; a candidate of tex missing from
// rects is an error.
func Capture(t *Table, tex tile.TextureID, width, height int, rects []SpriteRect) (*Template, error) {
	where := make(map[tile.SpriteID]SpriteRect, len(rects))
	for _, r := range rects {
		where[r.Sprite] = r
	}
	tpl := &Template{Width: width, Height: height, Mode: t.mode}
	for _, m := range t.Masks() {
		for _, c := range t.entries[m] {
			if c.Texture != tex {
				continue
			}
			r, ok := where[c.Sprite]
			if !ok {
				return nil, fmt.Errorf("mask %d: sprite '%s' is not part of texture '%s'", m, c.Sprite, tex)
			}
			tpl.Sprites = append(tpl.Sprites, TemplateSprite{X: r.X, Y: r.Y, Mask: m})
		}
	}
	return tpl, nil
}

// Apply registers tex on t and adds every sprite of rects whose position,
// relative to the texture size, matches a template location. A template for
// a different mask mode is rejected with a *tile.ConfigurationMismatchError
// and nothing is applied.
func (tpl *Template) Apply(t *Table, tex tile.TextureID, width, height int, rects []SpriteRect) error {
	if tpl.Mode != t.mode {
		return &tile.ConfigurationMismatchError{Subject: "mask mode", Want: t.mode.String(), Got: tpl.Mode.String()}
	}
	if width <= 0 || height <= 0 || tpl.Width <= 0 || tpl.Height <= 0 {
		return fmt.Errorf("texture size %dx%d cannot be matched against template size %dx%d", width, height, tpl.Width, tpl.Height)
	}
	for _, s := range tpl.Sprites {
		if err := mask.CheckRange(s.Mask, t.mode); err != nil {
			return err
		}
	}

	t.AddTexture(tex, DefaultTextureScale)
	for _, r := range rects {
		for _, s := range tpl.Sprites {
			// Compare x/width with s.X/tpl.Width without leaving integers.
			if r.X*tpl.Width == s.X*width && r.Y*tpl.Height == s.Y*height {
				// Range was checked above.
				_ = t.AddCandidate(s.Mask, r.Sprite, tex)
				break
			}
		}
	}
	return nil
}
