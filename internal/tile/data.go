package tile

import (
	"fmt"
	"strings"

	"github.com/vk/tilesmith/internal/grid"
)

// SpriteID, ObjectID and TextureID are opaque asset handles. The empty string
// means "none".
type (
	SpriteID  string
	ObjectID  string
	TextureID string
)

// ColliderType selects the collision shape the host builds for a cell.
type ColliderType int

const (
	ColliderNone ColliderType = iota
	ColliderSprite
	ColliderGrid
)

func (c ColliderType) String() string {
	switch c {
	case ColliderNone:
		return "none"
	case ColliderSprite:
		return "sprite"
	case ColliderGrid:
		return "grid"
	default:
		return fmt.Sprintf("ColliderType(%d)", int(c))
	}
}

// ParseCollider accepts "none", "sprite" or "grid".
func ParseCollider(s string) (ColliderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ColliderNone, nil
	case "", "sprite":
		return ColliderSprite, nil
	case "grid":
		return ColliderGrid, nil
	default:
		return 0, fmt.Errorf("unknown collider type %q: must be 'none', 'sprite' or 'grid'", s)
	}
}

// Flags tell the host which parts of the visual it may not change.
type Flags uint8

const (
	FlagLockColor Flags = 1 << iota
	FlagLockTransform

	FlagsNone    Flags = 0
	FlagsLockAll       = FlagLockColor | FlagLockTransform
)

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

var White = Color{R: 1, G: 1, B: 1, A: 1}

// Data is the resolved visual for one cell.
type Data struct {
	Sprite     SpriteID
	Transform  grid.Transform
	GameObject ObjectID
	Collider   ColliderType
	Color      Color
	Flags      Flags
}

// DefaultData is the visual of a cell no rule or table has anything to say
// about.
func DefaultData() Data {
	return Data{
		Collider: ColliderSprite,
		Color:    White,
		Flags:    FlagsLockAll,
	}
}

// AnimationData describes a sprite animation for one cell.
type AnimationData struct {
	Sprites   []SpriteID
	Speed     float32
	StartTime float32
}
