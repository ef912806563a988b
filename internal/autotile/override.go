package autotile

import (
	"fmt"
	"strconv"

	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var schema = tile.Schema{
	{Name: "default_sprite", Type: cty.String, Doc: "Sprite used when the mask has no candidates."},
	{Name: "default_game_object", Type: cty.String, Doc: "Object placed in every cell."},
	{Name: "default_collider", Type: cty.String, Doc: "Collider: none, sprite or grid."},
	{Name: "random", Type: cty.Bool, Doc: "Pick among candidates by position."},
	{Name: "physics_shape_check", Type: cty.Bool, Doc: "Drop sprite colliders for sprites without a physics shape."},
	{Name: "mask_sprites", Type: cty.Map(cty.List(cty.String)), Doc: "Replacement candidate sprites keyed by mask."},
}

// Schema lists the properties a derived autotile may override.
func (t *Tile) Schema() tile.Schema { return schema }

// Override implements tile.Overridable.
func (t *Tile) Override(name string, v cty.Value) error {
	switch name {
	case "default_sprite":
		s, err := tile.StringValue(v)
		if err != nil {
			return err
		}
		t.DefaultSprite = tile.SpriteID(s)
		return nil
	case "default_game_object":
		s, err := tile.StringValue(v)
		if err != nil {
			return err
		}
		t.DefaultGameObject = tile.ObjectID(s)
		return nil
	case "default_collider":
		s, err := tile.StringValue(v)
		if err != nil {
			return err
		}
		c, err := tile.ParseCollider(s)
		if err != nil {
			return err
		}
		t.DefaultCollider = c
		return nil
	case "random":
		return gocty.FromCtyValue(v, &t.Random)
	case "physics_shape_check":
		return gocty.FromCtyValue(v, &t.PhysicsShapeCheck)
	case "mask_sprites":
		var byMask map[string][]string
		if err := gocty.FromCtyValue(v, &byMask); err != nil {
			return err
		}
		return t.replaceSprites(byMask)
	}
	return fmt.Errorf("unhandled property %q", name)
}

// replaceSprites swaps the candidates of each listed mask. Replacement
// sprites inherit the texture of the first candidate they replace. Every key
// is checked before anything is changed.
func (t *Tile) replaceSprites(byMask map[string][]string) error {
	parsed := make(map[uint32][]string, len(byMask))
	for key, names := range byMask {
		m, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return fmt.Errorf("mask key %q is not a number", key)
		}
		if err := mask.CheckRange(uint32(m), t.Table.mode); err != nil {
			return err
		}
		parsed[uint32(m)] = names
	}
	for m, names := range parsed {
		var tex tile.TextureID
		if old := t.Table.entries[m]; len(old) > 0 {
			tex = old[0].Texture
		}
		list := make([]Candidate, 0, len(names))
		for _, n := range names {
			list = append(list, Candidate{Sprite: tile.SpriteID(n), Texture: tex})
		}
		t.Table.entries[m] = list
	}
	return nil
}
