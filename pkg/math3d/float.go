package math3d

import (
	"math"

	"golang.org/x/exp/constraints"
)

// FloatEpsilon is the single-precision machine epsilon (2^-23). It is the
// default tolerance for point containment tests, so results match a float32
// GPU pipeline.
const FloatEpsilon = 1.1920928955078125e-07

// ApproxEqual reports whether |a-b| <= eps.
func ApproxEqual[T constraints.Float](a, b, eps T) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite[T constraints.Float](f T) bool {
	x := float64(f)
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
