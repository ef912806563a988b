// Package tileset turns an authored config.Model into tile handlers and
// registers them.
package tileset

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/tilesmith/internal/autotile"
	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/ruletile"
	"github.com/vk/tilesmith/internal/tile"
)

// Set holds the handlers built from one model, in definition order.
type Set struct {
	handlers []tile.Handler
	byName   map[string]tile.Handler
}

var _ registry.Module = (*Set)(nil)

// Build creates a handler for every tile in m. Derived tiles may name any
// other tile as their base, including another derived tile. All problems
// are collected before returning.
func Build(ctx context.Context, m *config.Model) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	s := &Set{byName: make(map[string]tile.Handler)}

	var errs []error
	add := func(name string, h tile.Handler, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		s.handlers = append(s.handlers, h)
		s.byName[name] = h
		logger.Debug("Tile built.", "tile", name, "identity", h.Identity(), "kind", h.Kind())
	}

	for _, t := range m.RuleTiles {
		h, err := buildRuleTile(t)
		add(t.Name, h, err)
	}
	for _, t := range m.AutoTiles {
		h, err := buildAutoTile(ctx, t)
		add(t.Name, h, err)
	}
	for _, t := range m.StaticTiles {
		h, err := buildStatic(t)
		add(t.Name, h, err)
	}

	derived := make(map[string]*config.DerivedTile, len(m.DerivedTiles))
	for _, t := range m.DerivedTiles {
		derived[t.Name] = t
	}
	visiting := make(map[string]bool)
	var resolve func(t *config.DerivedTile) error
	resolve = func(t *config.DerivedTile) error {
		if _, done := s.byName[t.Name]; done {
			return nil
		}
		if visiting[t.Name] {
			return fmt.Errorf("derived tile '%s' is part of a base cycle", t.Name)
		}
		visiting[t.Name] = true
		if _, ok := s.byName[t.Base]; !ok {
			if base, isDerived := derived[t.Base]; isDerived {
				if err := resolve(base); err != nil {
					return err
				}
			}
		}
		h, err := buildDerived(t, s.byName[t.Base])
		add(t.Name, h, err)
		return nil
	}
	for _, t := range m.DerivedTiles {
		if err := resolve(t); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

// Register implements registry.Module.
func (s *Set) Register(r *registry.Registry) {
	for _, h := range s.handlers {
		r.Register(h)
	}
}

// Handlers returns the built handlers in definition order.
func (s *Set) Handlers() []tile.Handler {
	return append([]tile.Handler(nil), s.handlers...)
}

// Handler returns the handler built for the named tile.
func (s *Set) Handler(name string) (tile.Handler, bool) {
	h, ok := s.byName[name]
	return h, ok
}

func buildRuleTile(c *config.RuleTile) (*ruletile.Tile, error) {
	topo, err := rule.ParseTopology(c.Topology, c.FlatTop)
	if err != nil {
		return nil, fmt.Errorf("rule tile '%s': %w", c.Name, err)
	}
	t := ruletile.New(grid.Identity(c.ID), c.Name, topo)
	t.DefaultSprite = tile.SpriteID(c.DefaultSprite)
	t.DefaultGameObject = tile.ObjectID(c.DefaultGameObject)
	if c.DefaultCollider != "" {
		if t.DefaultCollider, err = tile.ParseCollider(c.DefaultCollider); err != nil {
			return nil, fmt.Errorf("rule tile '%s': %w", c.Name, err)
		}
	}

	var errs []error
	rules := make([]*rule.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		r, err := buildRule(rc)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule tile '%s' rule %d: %w", c.Name, rc.ID, err))
			continue
		}
		rules = append(rules, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	t.SetRules(rules)
	t.Enable()
	return t, nil
}

func buildRule(c *config.Rule) (*rule.Rule, error) {
	r := rule.NewRule(c.ID)
	r.Enabled = c.Enabled

	var err error
	if r.Mode, err = rule.ParseMatchMode(c.Match); err != nil {
		return nil, err
	}
	if r.Output.Mode, err = rule.ParseOutputMode(c.Output); err != nil {
		return nil, err
	}
	if c.Collider != "" {
		if r.Output.Collider, err = tile.ParseCollider(c.Collider); err != nil {
			return nil, err
		}
	}
	if c.RandomTransform != "" {
		if r.Output.RandomTransform, err = rule.ParseMatchMode(c.RandomTransform); err != nil {
			return nil, fmt.Errorf("random transform: %w", err)
		}
	}
	r.Output.Sprites = sprites(c.Sprites)
	r.Output.GameObject = tile.ObjectID(c.GameObject)
	r.Output.MinSpeed = float32(c.MinSpeed)
	r.Output.MaxSpeed = float32(c.MaxSpeed)
	r.Output.NoiseScale = c.NoiseScale

	for _, n := range c.Neighbors {
		cond, err := rule.ParseCondition(n.Condition)
		if err != nil {
			return nil, fmt.Errorf("neighbor (%d, %d): %w", n.X, n.Y, err)
		}
		r.Set(grid.Pos(n.X, n.Y), cond)
	}
	return r, nil
}

func buildAutoTile(ctx context.Context, c *config.AutoTile) (*autotile.Tile, error) {
	mode, err := mask.ParseMode(c.Mask)
	if err != nil {
		return nil, fmt.Errorf("autotile '%s': %w", c.Name, err)
	}
	t := autotile.New(grid.Identity(c.ID), c.Name, mode)
	t.Random = c.Random
	t.PhysicsShapeCheck = c.PhysicsShapeCheck
	t.DefaultSprite = tile.SpriteID(c.DefaultSprite)
	t.DefaultGameObject = tile.ObjectID(c.DefaultGameObject)
	if c.DefaultCollider != "" {
		if t.DefaultCollider, err = tile.ParseCollider(c.DefaultCollider); err != nil {
			return nil, fmt.Errorf("autotile '%s': %w", c.Name, err)
		}
	}

	for _, tex := range c.Textures {
		t.Table.AddTexture(tile.TextureID(tex.Name), tex.Scale)
	}
	var errs []error
	for _, e := range c.Entries {
		for _, sp := range e.Sprites {
			if err := t.Table.AddCandidate(e.Mask, tile.SpriteID(sp), tile.TextureID(e.Texture)); err != nil {
				errs = append(errs, fmt.Errorf("autotile '%s': %w", c.Name, err))
				break
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if keys, candidates := t.Table.Validate(); keys > 0 || candidates > 0 {
		ctxlog.FromContext(ctx).Warn("Autotile entries dropped during validation.",
			"tile", c.Name, "keys", keys, "candidates", candidates)
	}
	for _, sp := range c.NoPhysicsShape {
		t.SetPhysicsShape(tile.SpriteID(sp), false)
	}
	return t, nil
}

func buildStatic(c *config.StaticTile) (*tile.Static, error) {
	s := tile.NewStatic(grid.Identity(c.ID), c.Name, tile.SpriteID(c.Sprite))
	d := s.Data()
	d.GameObject = tile.ObjectID(c.GameObject)
	if c.Collider != "" {
		var err error
		if d.Collider, err = tile.ParseCollider(c.Collider); err != nil {
			return nil, fmt.Errorf("static tile '%s': %w", c.Name, err)
		}
	}
	s.SetData(d)
	return s, nil
}

// buildDerived clones base under the derived tile's identity and applies its
// property overrides.
func buildDerived(c *config.DerivedTile, base tile.Handler) (tile.Handler, error) {
	id := grid.Identity(c.ID)
	var clone interface {
		tile.Handler
		tile.Overridable
	}
	switch b := base.(type) {
	case nil:
		return nil, fmt.Errorf("derived tile '%s': base tile '%s' is not defined", c.Name, c.Base)
	case *ruletile.Tile:
		t := b.Clone(id, c.Name)
		t.Enable()
		clone = t
	case *autotile.Tile:
		clone = b.Clone(id, c.Name)
	case *tile.Static:
		clone = b.Clone(id, c.Name)
	default:
		return nil, fmt.Errorf("derived tile '%s': base tile '%s' of kind %s cannot be derived from", c.Name, c.Base, base.Kind())
	}
	if err := tile.ApplyOverrides(clone, c.Properties); err != nil {
		return nil, fmt.Errorf("derived tile '%s': %w", c.Name, err)
	}
	return clone, nil
}

func sprites(names []string) []tile.SpriteID {
	if len(names) == 0 {
		return nil
	}
	out := make([]tile.SpriteID, len(names))
	for i, n := range names {
		out[i] = tile.SpriteID(n)
	}
	return out
}
