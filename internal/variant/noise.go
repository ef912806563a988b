package variant

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha  = 2
	noiseBeta   = 2
	noiseOctave = 1
	noiseSeed   = 0x7115
)

// field is shared by every tile. It is read-only after construction, so
// concurrent batch workers can sample it freely.
var field = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, noiseSeed)

// Noise samples 2D gradient noise at (x, y). The result lies in [-1, 1] and
// is 0 on every integer lattice point. A single octave of unit gradients
// peaks at sqrt(1/2), so the sample is stretched by sqrt(2).
func Noise(x, y float64) float64 {
	n := field.Noise2D(x, y) * math.Sqrt2
	return math.Max(-1, math.Min(1, n))
}

// Noise01 is Noise remapped to [0, 1].
func Noise01(x, y float64) float64 {
	return (Noise(x, y) + 1) / 2
}
