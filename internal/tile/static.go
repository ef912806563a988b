package tile

import (
	"fmt"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/zclconf/go-cty/cty"
)

// Static is a tile whose visual never depends on its neighbors. It only ever
// invalidates its own cell and has no animation.
type Static struct {
	id   grid.Identity
	name string
	data Data
}

// NewStatic creates a constant tile showing sprite.
func NewStatic(id grid.Identity, name string, sprite SpriteID) *Static {
	d := DefaultData()
	d.Sprite = sprite
	return &Static{id: id, name: name, data: d}
}

// Fallback is the static tile used for cells nothing is registered for.
var Fallback = &Static{name: "fallback", data: DefaultData()}

func (s *Static) Identity() grid.Identity { return s.id }
func (s *Static) Kind() Kind              { return KindStatic }
func (s *Static) Name() string            { return s.name }

// Data returns the constant visual.
func (s *Static) Data() Data { return s.data }

// SetData replaces the constant visual.
func (s *Static) SetData(d Data) { s.data = d }

func (s *Static) RefreshRun(positions []grid.Position, emit func(grid.Position)) {
	for _, p := range positions {
		emit(p)
	}
}

func (s *Static) ResolveRun(_ grid.Query, positions []grid.Position, out []Data) {
	for i := range positions {
		out[i] = s.data
	}
}

func (s *Static) Refresh(p grid.Position, emit func(grid.Position)) { emit(p) }

func (s *Static) Resolve(grid.Query, grid.Position) Data { return s.data }

var staticSchema = Schema{
	{Name: "sprite", Type: cty.String, Doc: "Sprite shown in every cell."},
	{Name: "game_object", Type: cty.String, Doc: "Object instantiated in every cell."},
	{Name: "collider", Type: cty.String, Doc: "One of none, sprite, grid."},
}

func (s *Static) Schema() Schema { return staticSchema }

func (s *Static) Override(name string, v cty.Value) error {
	str, err := StringValue(v)
	if err != nil {
		return err
	}
	switch name {
	case "sprite":
		s.data.Sprite = SpriteID(str)
	case "game_object":
		s.data.GameObject = ObjectID(str)
	case "collider":
		c, err := ParseCollider(str)
		if err != nil {
			return err
		}
		s.data.Collider = c
	default:
		return fmt.Errorf("unhandled property %q", name)
	}
	return nil
}

// Clone copies s under a new identity and name.
func (s *Static) Clone(id grid.Identity, name string) *Static {
	return &Static{id: id, name: name, data: s.data}
}
