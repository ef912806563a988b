package rule

import (
	"fmt"
	"math"
	"strings"

	"github.com/vk/tilesmith/internal/grid"
)

// Topology supplies the grid-specific coordinate transforms used by matching.
type Topology interface {
	// Name identifies the topology in assets and error messages.
	Name() string
	// RotationStep is the smallest rotation in degrees that maps the grid
	// onto itself.
	RotationStep() int
	// Rotate turns an offset by angle degrees. angle is a multiple of
	// RotationStep in [0, 360).
	Rotate(off grid.Position, angle int) grid.Position
	// Mirror flips an offset across the requested axes.
	Mirror(off grid.Position, x, y bool) grid.Position
	// Offset returns the cell reached from pos by off.
	Offset(pos, off grid.Position) grid.Position
	// Reverse returns the cell from which off reaches pos.
	Reverse(pos, off grid.Position) grid.Position
}

// Rect is the topology of rectangular and isometric grids.
type Rect struct {
	Isometric bool
}

func (r Rect) Name() string {
	if r.Isometric {
		return "isometric"
	}
	return "rectangular"
}

func (Rect) RotationStep() int { return 90 }

func (Rect) Rotate(off grid.Position, angle int) grid.Position {
	switch angle {
	case 90:
		return grid.Position{X: off.Y, Y: -off.X, Z: off.Z}
	case 180:
		return grid.Position{X: -off.X, Y: -off.Y, Z: off.Z}
	case 270:
		return grid.Position{X: -off.Y, Y: off.X, Z: off.Z}
	}
	return off
}

func (Rect) Mirror(off grid.Position, x, y bool) grid.Position {
	if x {
		off = off.FlipX()
	}
	if y {
		off = off.FlipY()
	}
	return off
}

func (Rect) Offset(pos, off grid.Position) grid.Position  { return pos.Add(off) }
func (Rect) Reverse(pos, off grid.Position) grid.Position { return pos.Sub(off) }

// hexYScale is the vertical distance between hexagon rows in world units.
var hexYScale = math.Sqrt(1 - 0.25)

// Hex is the topology of offset-row hexagonal grids where odd rows are
// shifted half a cell to the right. FlatTop grids store their cells with the
// axes swapped, which changes the rotation direction and the mirror axes.
type Hex struct {
	FlatTop bool
}

func (h Hex) Name() string {
	if h.FlatTop {
		return "hexagonal/flat-top"
	}
	return "hexagonal"
}

func (Hex) RotationStep() int { return 60 }

func (h Hex) Rotate(off grid.Position, angle int) grid.Position {
	if angle%360 == 0 {
		return off
	}
	wx, wy := hexToWorld(off)
	rad := float64(angle) * math.Pi / 180
	if !h.FlatTop {
		rad = -rad
	}
	c, s := math.Cos(rad), math.Sin(rad)
	return worldToHex(wx*c-wy*s, wx*s+wy*c, off.Z)
}

func (h Hex) Mirror(off grid.Position, x, y bool) grid.Position {
	if !x && !y {
		return off
	}
	if h.FlatTop {
		x, y = y, x
	}
	wx, wy := hexToWorld(off)
	if x {
		wx = -wx
	}
	if y {
		wy = -wy
	}
	return worldToHex(wx, wy, off.Z)
}

func (Hex) Offset(pos, off grid.Position) grid.Position {
	p := pos.Add(off)
	if off.Y%2 != 0 && pos.Y%2 != 0 {
		p.X++
	}
	return p
}

func (h Hex) Reverse(pos, off grid.Position) grid.Position {
	return h.Offset(pos, h.Rotate(off, 180))
}

func hexToWorld(p grid.Position) (float64, float64) {
	x := float64(p.X)
	if p.Y%2 != 0 {
		x += 0.5
	}
	return x, float64(p.Y) * hexYScale
}

func worldToHex(x, y float64, z int) grid.Position {
	cy := int(math.RoundToEven(y / hexYScale))
	var cx int
	if cy%2 != 0 {
		cx = int(math.RoundToEven(x - 0.5))
	} else {
		cx = int(math.RoundToEven(x))
	}
	return grid.Position{X: cx, Y: cy, Z: z}
}

// ParseTopology accepts "rectangular", "isometric" or "hexagonal".
func ParseTopology(name string, flatTop bool) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rectangular":
		return Rect{}, nil
	case "isometric":
		return Rect{Isometric: true}, nil
	case "hexagonal":
		return Hex{FlatTop: flatTop}, nil
	case "hexagonal/flat-top":
		return Hex{FlatTop: true}, nil
	default:
		return nil, fmt.Errorf("unknown topology %q: must be 'rectangular', 'isometric' or 'hexagonal'", name)
	}
}
