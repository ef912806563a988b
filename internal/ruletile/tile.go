// Package ruletile implements tiles whose visual is chosen by matching an
// ordered list of neighbor rules.
package ruletile

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/rule"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/vk/tilesmith/internal/variant"
)

// Tile is a rule tile. The first enabled rule that matches a cell decides its
// visual; cells no rule matches get the defaults.
//
// Rules are read concurrently during batches and must only be mutated between
// batches. Every mutation drops the neighbor cache, which is rebuilt on next
// use.
type Tile struct {
	id   grid.Identity
	name string
	topo rule.Topology

	DefaultSprite     tile.SpriteID
	DefaultGameObject tile.ObjectID
	DefaultCollider   tile.ColliderType

	rules  []*rule.Rule
	cache  atomic.Pointer[rule.NeighborCache]
	stream atomic.Pointer[variant.Stream]
}

// New creates a rule tile with no rules. A nil topo means rectangular.
func New(id grid.Identity, name string, topo rule.Topology) *Tile {
	if topo == nil {
		topo = rule.Rect{}
	}
	return &Tile{
		id:              id,
		name:            name,
		topo:            topo,
		DefaultCollider: tile.ColliderSprite,
	}
}

func (t *Tile) Identity() grid.Identity { return t.id }
func (t *Tile) Kind() tile.Kind         { return tile.KindRule }
func (t *Tile) Name() string            { return t.name }
func (t *Tile) Topology() rule.Topology { return t.topo }

// Rules returns copies of the rules in evaluation order. Edits go back
// through ReplaceRule so the neighbor cache follows them.
func (t *Tile) Rules() []*rule.Rule {
	out := make([]*rule.Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Clone()
	}
	return out
}

// AddRule appends a copy of r.
func (t *Tile) AddRule(r *rule.Rule) {
	t.rules = append(t.rules, r.Clone())
	t.invalidate()
}

// ReplaceRule swaps the rule sharing r's ID for a copy of r and reports
// whether one was found.
func (t *Tile) ReplaceRule(r *rule.Rule) bool {
	i := slices.IndexFunc(t.rules, func(cur *rule.Rule) bool { return cur.ID == r.ID })
	if i < 0 {
		return false
	}
	t.rules[i] = r.Clone()
	t.invalidate()
	return true
}

// InsertRule places a copy of r at index i.
func (t *Tile) InsertRule(i int, r *rule.Rule) error {
	if i < 0 || i > len(t.rules) {
		return fmt.Errorf("rule index %d out of range [0, %d]", i, len(t.rules))
	}
	t.rules = slices.Insert(t.rules, i, r.Clone())
	t.invalidate()
	return nil
}

// RemoveRule deletes the rule with the given ID and reports whether one was
// found.
func (t *Tile) RemoveRule(id int) bool {
	i := slices.IndexFunc(t.rules, func(r *rule.Rule) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	t.rules = slices.Delete(t.rules, i, i+1)
	t.invalidate()
	return true
}

// SetRules replaces every rule with copies of rules.
func (t *Tile) SetRules(rules []*rule.Rule) {
	t.rules = make([]*rule.Rule, len(rules))
	for i, r := range rules {
		t.rules[i] = r.Clone()
	}
	t.invalidate()
}

// SetTopology switches the grid topology the rules are evaluated on.
func (t *Tile) SetTopology(topo rule.Topology) {
	t.topo = topo
	t.invalidate()
}

// NextRuleID returns an ID no current rule uses.
func (t *Tile) NextRuleID() int {
	next := 1
	for _, r := range t.rules {
		next = max(next, r.ID+1)
	}
	return next
}

func (t *Tile) invalidate() {
	t.cache.Store(nil)
}

// Neighbors returns the neighbor cache, building it if a mutation dropped it.
func (t *Tile) Neighbors() *rule.NeighborCache {
	if c := t.cache.Load(); c != nil {
		return c
	}
	c := rule.BuildNeighborCache(t.rules, t.topo)
	if t.cache.CompareAndSwap(nil, c) {
		return c
	}
	return t.cache.Load()
}

// Enable seeds the animation stream from the tile identity.
func (t *Tile) Enable() {
	t.stream.Store(variant.NewStream(t.id))
}

// Disable releases the neighbor cache and the animation stream.
func (t *Tile) Disable() {
	t.cache.Store(nil)
	t.stream.Store(nil)
}

func (t *Tile) animationStream() *variant.Stream {
	if s := t.stream.Load(); s != nil {
		return s
	}
	t.stream.CompareAndSwap(nil, variant.NewStream(t.id))
	return t.stream.Load()
}

// Match returns the first enabled rule matching at pos.
func (t *Tile) Match(q grid.Query, pos grid.Position) (*rule.Rule, grid.Transform, bool) {
	for _, r := range t.rules {
		if !r.Enabled {
			continue
		}
		if ok, tr := rule.Matches(r, q, t.topo, pos, t.id); ok {
			return r, tr, true
		}
	}
	return nil, grid.Transform{}, false
}

func (t *Tile) defaultData() tile.Data {
	d := tile.DefaultData()
	d.Sprite = t.DefaultSprite
	d.GameObject = t.DefaultGameObject
	d.Collider = t.DefaultCollider
	return d
}

// Resolve computes the visual of the cell at pos.
func (t *Tile) Resolve(q grid.Query, pos grid.Position) tile.Data {
	r, tr, ok := t.Match(q, pos)
	if !ok {
		return t.defaultData()
	}
	return variant.ResolveOutput(&r.Output, pos, tr, t.topo)
}

// Refresh emits pos and every cell whose rules can see pos.
func (t *Tile) Refresh(pos grid.Position, emit func(grid.Position)) {
	emit(pos)
	for _, off := range t.Neighbors().Offsets {
		emit(t.topo.Reverse(pos, off))
	}
}

func (t *Tile) RefreshRun(positions []grid.Position, emit func(grid.Position)) {
	for _, p := range positions {
		t.Refresh(p, emit)
	}
}

func (t *Tile) ResolveRun(q grid.Query, positions []grid.Position, out []tile.Data) {
	for i, p := range positions {
		out[i] = t.Resolve(q, p)
	}
}

// Animate returns the animation of the first matching rule with animation
// output. The speed comes from the tile's stream.
func (t *Tile) Animate(q grid.Query, pos grid.Position) (tile.AnimationData, bool) {
	for _, r := range t.rules {
		if !r.Enabled || r.Output.Mode != rule.Animation {
			continue
		}
		if ok, _ := rule.Matches(r, q, t.topo, pos, t.id); ok {
			return tile.AnimationData{
				Sprites: slices.Clone(r.Output.Sprites),
				Speed:   t.animationStream().Float32(r.Output.MinSpeed, r.Output.MaxSpeed),
			}, true
		}
	}
	return tile.AnimationData{}, false
}

func (t *Tile) AnimateRun(q grid.Query, positions []grid.Position, out []tile.AnimationData, ok []bool) {
	for i, p := range positions {
		out[i], ok[i] = t.Animate(q, p)
	}
}

// Clone deep-copies t under a new identity and name. The copy starts
// disabled.
func (t *Tile) Clone(id grid.Identity, name string) *Tile {
	c := New(id, name, t.topo)
	c.DefaultSprite = t.DefaultSprite
	c.DefaultGameObject = t.DefaultGameObject
	c.DefaultCollider = t.DefaultCollider
	c.rules = make([]*rule.Rule, len(t.rules))
	for i, r := range t.rules {
		c.rules[i] = r.Clone()
	}
	return c
}

// Validate reports rules with authoring problems.
func (t *Tile) Validate() []error {
	var errs []error
	for _, r := range t.rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
