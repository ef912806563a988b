package ruletile

import (
	"fmt"
	"strconv"

	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var schema = tile.Schema{
	{Name: "default_sprite", Type: cty.String, Doc: "Sprite used when no rule matches."},
	{Name: "default_game_object", Type: cty.String, Doc: "Object used when no rule matches."},
	{Name: "default_collider", Type: cty.String, Doc: "Collider used when no rule matches: none, sprite or grid."},
	{Name: "rule_sprites", Type: cty.Map(cty.List(cty.String)), Doc: "Replacement sprite lists keyed by rule ID."},
	{Name: "rule_game_objects", Type: cty.Map(cty.String), Doc: "Replacement objects keyed by rule ID."},
}

// Schema lists the properties a derived rule tile may override.
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
	case "rule_sprites":
		var byID map[string][]string
		if err := gocty.FromCtyValue(v, &byID); err != nil {
			return err
		}
		for key, names := range byID {
			r, err := t.ruleByKey(key)
			if err != nil {
				return err
			}
			r.Output.Sprites = make([]tile.SpriteID, len(names))
			for i, n := range names {
				r.Output.Sprites[i] = tile.SpriteID(n)
			}
		}
		return nil
	case "rule_game_objects":
		var byID map[string]string
		if err := gocty.FromCtyValue(v, &byID); err != nil {
			return err
		}
		for key, obj := range byID {
			r, err := t.ruleByKey(key)
			if err != nil {
				return err
			}
			r.Output.GameObject = tile.ObjectID(obj)
		}
		return nil
	}
	return fmt.Errorf("unhandled property %q", name)
}

func (t *Tile) ruleByKey(key string) (*rule.Rule, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return nil, fmt.Errorf("rule key %q is not a rule ID", key)
	}
	for _, r := range t.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no rule with ID %d", id)
}
