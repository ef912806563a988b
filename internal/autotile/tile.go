package autotile

import (
	"fmt"
	"maps"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/mask"
	"github.com/vk/tilesmith/internal/tile"
	"github.com/vk/tilesmith/internal/variant"
)

// Tile resolves its sprite from the mask of same-identity neighbors in its
// 3x3 block.
type Tile struct {
	id   grid.Identity
	name string

	Table *Table
	// Random picks among several candidates by position instead of always
	// taking the first.
	Random bool
	// PhysicsShapeCheck downgrades a sprite collider to none when the chosen
	// sprite has no physics shape.
	PhysicsShapeCheck bool

	DefaultSprite     tile.SpriteID
	DefaultGameObject tile.ObjectID
	DefaultCollider   tile.ColliderType

	physics map[tile.SpriteID]bool
}

// New creates an autotile with an empty table.
func New(id grid.Identity, name string, mode mask.Mode) *Tile {
	return &Tile{
		id:              id,
		name:            name,
		Table:           NewTable(mode),
		DefaultCollider: tile.ColliderSprite,
		physics:         make(map[tile.SpriteID]bool),
	}
}

func (t *Tile) Identity() grid.Identity { return t.id }
func (t *Tile) Kind() tile.Kind         { return tile.KindAuto }
func (t *Tile) Name() string            { return t.name }

// SetPhysicsShape records whether sprite has a physics shape. Sprites never
// recorded keep their collider.
func (t *Tile) SetPhysicsShape(sprite tile.SpriteID, has bool) {
	t.physics[sprite] = has
}

// Refresh emits the 3x3 block centered on p.
func (t *Tile) Refresh(p grid.Position, emit func(grid.Position)) {
	mask.Block3x3.Each(func(_ int, off grid.Position) {
		emit(p.Add(off))
	})
}

func (t *Tile) RefreshRun(positions []grid.Position, emit func(grid.Position)) {
	for _, p := range positions {
		t.Refresh(p, emit)
	}
}

// Resolve computes the visual of the cell at p.
func (t *Tile) Resolve(q grid.Query, p grid.Position) tile.Data {
	var buf [9]grid.Identity
	return t.resolve(q, p, buf[:])
}

// ResolveRun resolves a run sharing one block buffer.
func (t *Tile) ResolveRun(q grid.Query, positions []grid.Position, out []tile.Data) {
	var buf [9]grid.Identity
	for i, p := range positions {
		out[i] = t.resolve(q, p, buf[:])
	}
}

func (t *Tile) resolve(q grid.Query, p grid.Position, buf []grid.Identity) tile.Data {
	d := tile.DefaultData()
	d.Sprite = t.DefaultSprite
	d.GameObject = t.DefaultGameObject
	d.Collider = t.DefaultCollider

	block := grid.Block(q, p, mask.Block3x3, buf)
	m := mask.Reduce(mask.FromBlock(block, t.id), t.Table.mode)
	if cands := t.Table.entries[m]; len(cands) > 0 {
		i := 0
		if t.Random && len(cands) > 1 {
			i = variant.NewRand(variant.PickSeed(p, t.id)).IntN(len(cands))
		}
		d.Sprite = cands[i].Sprite
	}

	if t.PhysicsShapeCheck && d.Collider == tile.ColliderSprite {
		if has, ok := t.physics[d.Sprite]; ok && !has {
			d.Collider = tile.ColliderNone
		}
	}
	return d
}

// Clone deep-copies t under a new identity and name.
func (t *Tile) Clone(id grid.Identity, name string) *Tile {
	c := *t
	c.id = id
	c.name = name
	c.Table = t.Table.Clone()
	c.physics = maps.Clone(t.physics)
	return &c
}

// Validate reports table keys that do not fit the mask mode. Such keys are
// never looked up.
func (t *Tile) Validate() []error {
	var errs []error
	for _, m := range t.Table.OutOfRange() {
		errs = append(errs, fmt.Errorf("autotile '%s': %w", t.name, &mask.MaskRangeError{Mask: m, Mode: t.Table.mode}))
	}
	return errs
}
