package config

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a tile set and
// the demo grid painted with it.
type Model struct {
	RuleTiles    []*RuleTile
	AutoTiles    []*AutoTile
	StaticTiles  []*StaticTile
	DerivedTiles []*DerivedTile
	Paint        []*Paint
}

// RuleTile is the format-agnostic representation of a `rule_tile` block.
type RuleTile struct {
	Name              string
	ID                uint32
	Topology          string
	FlatTop           bool
	DefaultSprite     string
	DefaultGameObject string
	DefaultCollider   string
	Rules             []*Rule
}

// Rule is one tiling rule of a rule tile.
type Rule struct {
	ID              int
	Enabled         bool
	Match           string
	Output          string
	Sprites         []string
	GameObject      string
	Collider        string
	MinSpeed        float64
	MaxSpeed        float64
	NoiseScale      float64
	RandomTransform string
	Neighbors       []Neighbor
}

// Neighbor is one (offset, condition) pair of a rule.
type Neighbor struct {
	X, Y      int
	Condition string
}

// NewRule returns a rule with the defaults every format applies to omitted
// fields.
func NewRule(id int) *Rule {
	return &Rule{
		ID:         id,
		Enabled:    true,
		Match:      "fixed",
		Output:     "single",
		Collider:   "sprite",
		MinSpeed:   1,
		MaxSpeed:   1,
		NoiseScale: 0.5,
	}
}

// AutoTile is the format-agnostic representation of an `autotile` block.
type AutoTile struct {
	Name              string
	ID                uint32
	Mask              string
	Random            bool
	PhysicsShapeCheck bool
	DefaultSprite     string
	DefaultGameObject string
	DefaultCollider   string
	// NoPhysicsShape lists sprites that have no physics shape.
	NoPhysicsShape []string
	Textures       []Texture
	Entries        []Entry
}

// Texture is a sprite sheet registered on an autotile.
type Texture struct {
	Name  string
	Scale float64
}

// Entry lists the candidate sprites of one mask, all cut from Texture.
type Entry struct {
	Mask    uint32
	Sprites []string
	Texture string
}

// StaticTile is a tile with a constant visual.
type StaticTile struct {
	Name       string
	ID         uint32
	Sprite     string
	GameObject string
	Collider   string
}

// DerivedTile copies another tile under a new name and identity and
// overrides some of its properties. Property names and types are checked
// against the base tile's schema when the tile set is built.
type DerivedTile struct {
	Name       string
	ID         uint32
	Base       string
	Properties map[string]cty.Value
}

// Paint fills a rectangle of the demo grid with one tile.
type Paint struct {
	Tile   string
	X, Y   int
	Width  int
	Height int
	Layer  int
}

// Merge appends everything in o to m.
func (m *Model) Merge(o *Model) {
	m.RuleTiles = append(m.RuleTiles, o.RuleTiles...)
	m.AutoTiles = append(m.AutoTiles, o.AutoTiles...)
	m.StaticTiles = append(m.StaticTiles, o.StaticTiles...)
	m.DerivedTiles = append(m.DerivedTiles, o.DerivedTiles...)
	m.Paint = append(m.Paint, o.Paint...)
}

// TileCount is the number of tile definitions of every kind.
func (m *Model) TileCount() int {
	return len(m.RuleTiles) + len(m.AutoTiles) + len(m.StaticTiles) + len(m.DerivedTiles)
}

// Validate checks that tile names and identities are unique, identities are
// non-zero, and every paint region names a defined tile.
func (m *Model) Validate() error {
	var errs []error
	names := make(map[string]bool)
	ids := make(map[uint32]string)
	check := func(kind, name string, id uint32) {
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("%s with identity %d has no name", kind, id))
		case names[name]:
			errs = append(errs, fmt.Errorf("tile name '%s' is defined more than once", name))
		}
		names[name] = true
		if id == 0 {
			errs = append(errs, fmt.Errorf("%s '%s': identity 0 is reserved for empty cells", kind, name))
		} else if prev, dup := ids[id]; dup {
			errs = append(errs, fmt.Errorf("%s '%s': identity %d is already used by '%s'", kind, name, id, prev))
		} else {
			ids[id] = name
		}
	}
	for _, t := range m.RuleTiles {
		check("rule_tile", t.Name, t.ID)
	}
	for _, t := range m.AutoTiles {
		check("autotile", t.Name, t.ID)
	}
	for _, t := range m.StaticTiles {
		check("static_tile", t.Name, t.ID)
	}
	for _, t := range m.DerivedTiles {
		check("derived_tile", t.Name, t.ID)
	}
	for _, t := range m.DerivedTiles {
		if !names[t.Base] {
			errs = append(errs, fmt.Errorf("derived_tile '%s': base tile '%s' is not defined", t.Name, t.Base))
		}
	}
	for i, p := range m.Paint {
		if !names[p.Tile] {
			errs = append(errs, fmt.Errorf("paint #%d: tile '%s' is not defined", i+1, p.Tile))
		}
		if p.Width <= 0 || p.Height <= 0 {
			errs = append(errs, fmt.Errorf("paint #%d: size %dx%d is empty", i+1, p.Width, p.Height))
		}
	}
	return errors.Join(errs...)
}
