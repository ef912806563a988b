package grid

import (
	"cmp"
	"fmt"
)

// Identity references a tile type instance. Two cells hold "the same tile"
// exactly when their identities are equal.
type Identity uint32

// None marks an empty cell.
const None Identity = 0

// Position is a cell coordinate. Z is the layer.
type Position struct {
	X, Y, Z int
}

// Pos is shorthand for a position on layer 0.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

func (p Position) Neg() Position {
	return Position{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// FlipX negates the X axis.
func (p Position) FlipX() Position {
	return Position{X: -p.X, Y: p.Y, Z: p.Z}
}

// FlipY negates the Y axis.
func (p Position) FlipY() Position {
	return Position{X: p.X, Y: -p.Y, Z: p.Z}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Compare orders positions by layer, then row, then column.
func (p Position) Compare(o Position) int {
	return cmp.Or(cmp.Compare(p.Z, o.Z), cmp.Compare(p.Y, o.Y), cmp.Compare(p.X, o.X))
}

// Bounds is an inclusive rectangle of cell offsets on a single layer.
type Bounds struct {
	XMin, YMin, XMax, YMax int
}

// Unit is the bounds of a single cell at the origin.
var Unit = Bounds{}

// Encapsulate grows b so that it contains p.
func (b Bounds) Encapsulate(p Position) Bounds {
	b.XMin = min(b.XMin, p.X)
	b.YMin = min(b.YMin, p.Y)
	b.XMax = max(b.XMax, p.X)
	b.YMax = max(b.YMax, p.Y)
	return b
}

func (b Bounds) Width() int  { return b.XMax - b.XMin + 1 }
func (b Bounds) Height() int { return b.YMax - b.YMin + 1 }

// Len is the number of cells covered by b.
func (b Bounds) Len() int { return b.Width() * b.Height() }

// Contains reports whether the offset p lies inside b, ignoring Z.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Each calls fn for every offset in b, row-major with the bottom row first.
// The index passed to fn is the offset's slot in a block buffer.
func (b Bounds) Each(fn func(i int, off Position)) {
	i := 0
	for y := b.YMin; y <= b.YMax; y++ {
		for x := b.XMin; x <= b.XMax; x++ {
			fn(i, Position{X: x, Y: y})
			i++
		}
	}
}
