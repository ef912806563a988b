package grid

import "fmt"

// Transform is the visual orientation chosen for a tile: a rotation about
// the view axis in degrees, applied after the mirror flags. The zero value is
// the identity.
type Transform struct {
	Rotation int
	FlipX    bool
	FlipY    bool
}

// Rotate returns the identity transform rotated by deg degrees.
func Rotate(deg int) Transform {
	return Transform{Rotation: normalizeAngle(deg)}
}

// Mirror returns a pure mirror transform.
func Mirror(x, y bool) Transform {
	return Transform{FlipX: x, FlipY: y}
}

// IsIdentity reports whether t leaves a sprite untouched.
func (t Transform) IsIdentity() bool {
	return t == Transform{}
}

// Matrix returns the 2x2 linear part of t for hosts that draw with matrices.
// Angles that are not multiples of 90 are rounded to the nearest
// representable value by the host; the hexagonal 60 degree steps come out as
// fractional entries.
func (t Transform) Matrix() [2][2]float64 {
	sx, sy := 1.0, 1.0
	if t.FlipX {
		sx = -1
	}
	if t.FlipY {
		sy = -1
	}
	c, s := cosSin(t.Rotation)
	return [2][2]float64{
		{c * sx, -s * sy},
		{s * sx, c * sy},
	}
}

// Compose returns the transform that applies u first and then t.
func Compose(t, u Transform) Transform {
	// Conjugating a rotation by a single-axis mirror reverses its direction.
	rot := u.Rotation
	if t.FlipX != t.FlipY {
		rot = -rot
	}
	return Transform{
		Rotation: normalizeAngle(t.Rotation + rot),
		FlipX:    t.FlipX != u.FlipX,
		FlipY:    t.FlipY != u.FlipY,
	}
}

func (t Transform) String() string {
	if t.IsIdentity() {
		return "identity"
	}
	return fmt.Sprintf("rot=%d flip_x=%t flip_y=%t", t.Rotation, t.FlipX, t.FlipY)
}

func normalizeAngle(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
