package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionArithmetic(t *testing.T) {
	p := Position{X: 1, Y: -2, Z: 3}

	assert.Equal(t, Position{X: 2, Y: -4, Z: 6}, p.Add(p))
	assert.Equal(t, Position{}, p.Sub(p))
	assert.Equal(t, Position{X: -1, Y: 2, Z: -3}, p.Neg())
	assert.Equal(t, Position{X: -1, Y: -2, Z: 3}, p.FlipX())
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, p.FlipY())
	assert.Equal(t, "(1,-2,3)", p.String())
}

func TestBounds(t *testing.T) {
	b := Unit.Encapsulate(Pos(-1, 2)).Encapsulate(Pos(1, -1))

	assert.Equal(t, Bounds{XMin: -1, YMin: -1, XMax: 1, YMax: 2}, b)
	assert.Equal(t, 12, b.Len())
	assert.True(t, b.Contains(Pos(0, 0)))
	assert.False(t, b.Contains(Pos(2, 0)))

	var order []Position
	Bounds{XMin: 0, YMin: 0, XMax: 1, YMax: 1}.Each(func(i int, off Position) {
		assert.Equal(t, len(order), i)
		order = append(order, off)
	})
	assert.Equal(t, []Position{Pos(0, 0), Pos(1, 0), Pos(0, 1), Pos(1, 1)}, order)
}

func TestTransform(t *testing.T) {
	assert.True(t, Transform{}.IsIdentity())
	assert.Equal(t, 270, Rotate(-90).Rotation)
	assert.Equal(t, [2][2]float64{{0, -1}, {1, 0}}, Rotate(90).Matrix())
	assert.Equal(t, [2][2]float64{{-1, 0}, {0, 1}}, Mirror(true, false).Matrix())
}
