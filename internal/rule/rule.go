package rule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/tilesmith/internal/grid"
	"github.com/vk/tilesmith/internal/tile"
)

// Condition is the requirement a single neighbor must satisfy.
type Condition int

const (
	// Any matches every neighbor. Values other than This and NotThis behave
	// the same way.
	Any Condition = iota
	// This requires the neighbor to be the same tile.
	This
	// NotThis requires the neighbor to be a different tile (or empty).
	NotThis
)

// Holds reports whether other satisfies c for a tile of identity self.
func (c Condition) Holds(self, other grid.Identity) bool {
	switch c {
	case This:
		return other == self
	case NotThis:
		return other != self
	default:
		return true
	}
}

func (c Condition) String() string {
	switch c {
	case This:
		return "this"
	case NotThis:
		return "not_this"
	default:
		return "any"
	}
}

// ParseCondition accepts "this", "not_this" or "any".
func ParseCondition(s string) (Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "this":
		return This, nil
	case "not_this", "notthis":
		return NotThis, nil
	case "any", "":
		return Any, nil
	default:
		return Any, fmt.Errorf("unknown condition %q: must be 'this', 'not_this' or 'any'", s)
	}
}

// MatchMode selects which symmetry transforms of a rule are tried.
type MatchMode int

const (
	Fixed MatchMode = iota
	Rotated
	MirrorX
	MirrorY
	MirrorXY
	RotatedMirror
)

var matchModeNames = map[MatchMode]string{
	Fixed:         "fixed",
	Rotated:       "rotated",
	MirrorX:       "mirror_x",
	MirrorY:       "mirror_y",
	MirrorXY:      "mirror_xy",
	RotatedMirror: "rotated_mirror",
}

func (m MatchMode) String() string {
	if s, ok := matchModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MatchMode(%d)", int(m))
}

// ParseMatchMode accepts the names printed by MatchMode.String.
func ParseMatchMode(s string) (MatchMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Fixed, nil
	}
	for m, name := range matchModeNames {
		if name == s {
			return m, nil
		}
	}
	return Fixed, fmt.Errorf("unknown match mode %q", s)
}

// OutputMode selects how a matched rule picks its sprite.
type OutputMode int

const (
	Single OutputMode = iota
	Random
	Animation
)

func (o OutputMode) String() string {
	switch o {
	case Single:
		return "single"
	case Random:
		return "random"
	case Animation:
		return "animation"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(o))
	}
}

// ParseOutputMode accepts "single", "random" or "animation".
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "":
		return Single, nil
	case "random":
		return Random, nil
	case "animation":
		return Animation, nil
	default:
		return Single, fmt.Errorf("unknown output mode %q: must be 'single', 'random' or 'animation'", s)
	}
}

// Output is what a matched rule produces.
type Output struct {
	Sprites    []tile.SpriteID
	GameObject tile.ObjectID
	MinSpeed   float32
	MaxSpeed   float32
	NoiseScale float64
	Mode       OutputMode
	Collider   tile.ColliderType
	// RandomTransform, when not Fixed, orients Random output by noise.
	RandomTransform MatchMode
}

// Rule is one neighbor pattern with its output.
type Rule struct {
	ID         int
	Enabled    bool
	Neighbors  []grid.Position
	Conditions []Condition
	Mode       MatchMode
	Output     Output
}

// DefaultNeighbors are the eight cells around the origin.
func DefaultNeighbors() []grid.Position {
	return []grid.Position{
		grid.Pos(-1, 1), grid.Pos(0, 1), grid.Pos(1, 1),
		grid.Pos(-1, 0), grid.Pos(1, 0),
		grid.Pos(-1, -1), grid.Pos(0, -1), grid.Pos(1, -1),
	}
}

// NewRule returns an enabled rule with the default output settings.
func NewRule(id int) *Rule {
	return &Rule{
		ID:      id,
		Enabled: true,
		Output: Output{
			MinSpeed:   1,
			MaxSpeed:   1,
			NoiseScale: 0.5,
			Mode:       Single,
			Collider:   tile.ColliderSprite,
		},
	}
}

// Pairs returns the number of (offset, condition) pairs that take part in
// matching. Extra offsets or conditions are ignored.
func (r *Rule) Pairs() int {
	return min(len(r.Neighbors), len(r.Conditions))
}

// Set appends an (offset, condition) pair, replacing the condition if the
// offset is already present.
func (r *Rule) Set(off grid.Position, c Condition) {
	if i := slices.Index(r.Neighbors, off); i >= 0 && i < len(r.Conditions) {
		r.Conditions[i] = c
		return
	}
	r.Neighbors = append(r.Neighbors, off)
	r.Conditions = append(r.Conditions, c)
}

// Clone deep-copies r.
func (r *Rule) Clone() *Rule {
	c := *r
	c.Neighbors = slices.Clone(r.Neighbors)
	c.Conditions = slices.Clone(r.Conditions)
	c.Output.Sprites = slices.Clone(r.Output.Sprites)
	return &c
}

// LengthMismatchError reports a rule whose offset and condition lists differ
// in length. Matching still works on the common prefix.
type LengthMismatchError struct {
	RuleID     int
	Neighbors  int
	Conditions int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("rule %d has %d neighbor offsets but %d conditions; only the first %d pairs are matched",
		e.RuleID, e.Neighbors, e.Conditions, min(e.Neighbors, e.Conditions))
}

// Validate reports authoring problems that do not stop the rule from being
// evaluated.
func (r *Rule) Validate() error {
	if len(r.Neighbors) != len(r.Conditions) {
		return &LengthMismatchError{RuleID: r.ID, Neighbors: len(r.Neighbors), Conditions: len(r.Conditions)}
	}
	if r.Output.MinSpeed > r.Output.MaxSpeed {
		return fmt.Errorf("rule %d: min animation speed %g is above max %g", r.ID, r.Output.MinSpeed, r.Output.MaxSpeed)
	}
	return nil
}
