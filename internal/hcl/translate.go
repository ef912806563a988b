package hcl

import (
	"context"
	"fmt"

	"github.com/vk/tilesmith/internal/autotile"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateFile converts the decoded blocks of one file into the agnostic
// model, filling in defaults for omitted attributes.
func translateFile(ctx context.Context, root *fileRoot) (*config.Model, error) {
	m := &config.Model{}
	for _, b := range root.RuleTiles {
		m.RuleTiles = append(m.RuleTiles, translateRuleTile(ctx, b))
	}
	for _, b := range root.AutoTiles {
		m.AutoTiles = append(m.AutoTiles, translateAutoTile(b))
	}
	for _, b := range root.StaticTiles {
		m.StaticTiles = append(m.StaticTiles, &config.StaticTile{
			Name:       b.Name,
			ID:         b.ID,
			Sprite:     b.Sprite,
			GameObject: b.GameObject,
			Collider:   b.Collider,
		})
	}
	for _, b := range root.DerivedTiles {
		t, err := translateDerivedTile(b)
		if err != nil {
			return nil, err
		}
		m.DerivedTiles = append(m.DerivedTiles, t)
	}
	for _, b := range root.Paint {
		p := &config.Paint{Tile: b.Tile, X: b.X, Y: b.Y, Width: 1, Height: 1, Layer: b.Layer}
		if b.Width != nil {
			p.Width = *b.Width
		}
		if b.Height != nil {
			p.Height = *b.Height
		}
		m.Paint = append(m.Paint, p)
	}
	return m, nil
}

func translateRuleTile(ctx context.Context, b *ruleTileBlock) *config.RuleTile {
	logger := ctxlog.FromContext(ctx).With("rule_tile", b.Name)
	t := &config.RuleTile{
		Name:              b.Name,
		ID:                b.ID,
		Topology:          b.Topology,
		FlatTop:           b.FlatTop,
		DefaultSprite:     b.DefaultSprite,
		DefaultGameObject: b.DefaultGameObject,
		DefaultCollider:   b.DefaultCollider,
	}
	if t.Topology == "" {
		t.Topology = "rectangular"
	}
	for i, rb := range b.Rules {
		id := i + 1
		if rb.ID != nil {
			id = *rb.ID
		} else {
			logger.Debug("Rule has no id, numbering by position.", "id", id)
		}
		r := config.NewRule(id)
		if rb.Enabled != nil {
			r.Enabled = *rb.Enabled
		}
		if rb.Match != nil {
			r.Match = *rb.Match
		}
		if rb.Output != nil {
			r.Output = *rb.Output
		}
		if rb.Collider != nil {
			r.Collider = *rb.Collider
		}
		if rb.MinSpeed != nil {
			r.MinSpeed = *rb.MinSpeed
		}
		if rb.MaxSpeed != nil {
			r.MaxSpeed = *rb.MaxSpeed
		}
		if rb.NoiseScale != nil {
			r.NoiseScale = *rb.NoiseScale
		}
		r.Sprites = rb.Sprites
		r.GameObject = rb.GameObject
		r.RandomTransform = rb.RandomTransform
		for _, n := range rb.Neighbors {
			r.Neighbors = append(r.Neighbors, config.Neighbor{X: n.X, Y: n.Y, Condition: n.Is})
		}
		t.Rules = append(t.Rules, r)
	}
	return t
}

func translateAutoTile(b *autoTileBlock) *config.AutoTile {
	t := &config.AutoTile{
		Name:              b.Name,
		ID:                b.ID,
		Mask:              b.Mask,
		Random:            b.Random,
		PhysicsShapeCheck: b.PhysicsShapeCheck,
		DefaultSprite:     b.DefaultSprite,
		DefaultGameObject: b.DefaultGameObject,
		DefaultCollider:   b.DefaultCollider,
		NoPhysicsShape:    b.NoPhysicsShape,
	}
	for _, tb := range b.Textures {
		scale := autotile.DefaultTextureScale
		if tb.Scale != nil {
			scale = *tb.Scale
		}
		t.Textures = append(t.Textures, config.Texture{Name: tb.Name, Scale: scale})
	}
	for _, eb := range b.Entries {
		t.Entries = append(t.Entries, config.Entry{Mask: eb.Mask, Sprites: eb.Sprites, Texture: eb.Texture})
	}
	return t
}

// translateDerivedTile evaluates the override attributes. They may only be
// literals: there are no variables or functions in scope.
func translateDerivedTile(b *derivedTileBlock) (*config.DerivedTile, error) {
	t := &config.DerivedTile{Name: b.Name, ID: b.ID, Base: b.Base, Properties: map[string]cty.Value{}}
	if b.Properties == nil {
		return t, nil
	}
	attrs, diags := b.Properties.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("derived_tile '%s' properties: %w", b.Name, diags)
	}
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("derived_tile '%s' property '%s': %w", b.Name, name, diags)
		}
		t.Properties[name] = v
	}
	return t, nil
}
