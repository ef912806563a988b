package ruletile

import (
	"fmt"

	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
)

// SpriteRect places a sprite inside its source texture.
type SpriteRect struct {
	Sprite tile.SpriteID
	X, Y   int
}

// Point is a location inside a texture.
type Point struct {
	X, Y int
}

// TemplateRule is a rule whose sprites are stored as texture locations.
type TemplateRule struct {
	Rule    *rule.Rule
	Sprites []Point
}

// Template captures a rule tile's layout independent of any particular
// texture, so the same rules can be re-applied to a different sprite sheet
// with the same arrangement.
type Template struct {
	Topology          string
	TextureWidth      int
	TextureHeight     int
	DefaultSprite     *Point
	DefaultGameObject tile.ObjectID
	DefaultCollider   tile.ColliderType
	Rules             []TemplateRule
}

// Capture builds a template from t. Every sprite t references must be listed
// in sprites.
func Capture(t *Tile, width, height int, sprites []SpriteRect) (*Template, error) {
	where := make(map[tile.SpriteID]Point, len(sprites))
	for _, s := range sprites {
		where[s.Sprite] = Point{X: s.X, Y: s.Y}
	}
	locate := func(s tile.SpriteID) (Point, error) {
		p, ok := where[s]
		if !ok {
			return Point{}, fmt.Errorf("sprite '%s' is not part of the texture", s)
		}
		return p, nil
	}

	tpl := &Template{
		Topology:          t.topo.Name(),
		TextureWidth:      width,
		TextureHeight:     height,
		DefaultGameObject: t.DefaultGameObject,
		DefaultCollider:   t.DefaultCollider,
	}
	if t.DefaultSprite != "" {
		p, err := locate(t.DefaultSprite)
		if err != nil {
			return nil, err
		}
		tpl.DefaultSprite = &p
	}
	for _, r := range t.rules {
		tr := TemplateRule{Rule: r.Clone()}
		tr.Rule.Output.Sprites = nil
		for _, s := range r.Output.Sprites {
			p, err := locate(s)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", r.ID, err)
			}
			tr.Sprites = append(tr.Sprites, p)
		}
		tpl.Rules = append(tpl.Rules, tr)
	}
	return tpl, nil
}

// Apply rebuilds t's rules and defaults from the template using the sprites
// of a texture of the given size. Locations are scaled when the texture size
// differs from the captured one. Nothing is changed on error.
func (tpl *Template) Apply(t *Tile, width, height int, sprites []SpriteRect) error {
	if tpl.Topology != t.topo.Name() {
		return &tile.ConfigurationMismatchError{Subject: "topology", Want: t.topo.Name(), Got: tpl.Topology}
	}

	at := make(map[Point]tile.SpriteID, len(sprites))
	for _, s := range sprites {
		at[Point{X: s.X, Y: s.Y}] = s.Sprite
	}
	lookup := func(p Point) (tile.SpriteID, error) {
		if tpl.TextureWidth > 0 && tpl.TextureHeight > 0 && (width != tpl.TextureWidth || height != tpl.TextureHeight) {
			p = Point{X: p.X * width / tpl.TextureWidth, Y: p.Y * height / tpl.TextureHeight}
		}
		s, ok := at[p]
		if !ok {
			return "", fmt.Errorf("texture has no sprite at (%d,%d)", p.X, p.Y)
		}
		return s, nil
	}

	var defaultSprite tile.SpriteID
	if tpl.DefaultSprite != nil {
		s, err := lookup(*tpl.DefaultSprite)
		if err != nil {
			return fmt.Errorf("default sprite: %w", err)
		}
		defaultSprite = s
	}
	rules := make([]*rule.Rule, 0, len(tpl.Rules))
	for _, tr := range tpl.Rules {
		r := tr.Rule.Clone()
		r.Output.Sprites = make([]tile.SpriteID, 0, len(tr.Sprites))
		for _, p := range tr.Sprites {
			s, err := lookup(p)
			if err != nil {
				return fmt.Errorf("rule %d: %w", r.ID, err)
			}
			r.Output.Sprites = append(r.Output.Sprites, s)
		}
		rules = append(rules, r)
	}

	t.DefaultSprite = defaultSprite
	t.DefaultGameObject = tpl.DefaultGameObject
	t.DefaultCollider = tpl.DefaultCollider
	t.SetRules(rules)
	return nil
}
