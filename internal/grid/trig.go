package grid

import "math"

// cosSin returns exact values for the quarter turns so that rectangular
// transforms stay integral.
func cosSin(deg int) (float64, float64) {
	switch normalizeAngle(deg) {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := float64(deg) * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
