package pumpsdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi        = math.Pi
	tau       = 2 * pi
	tolerance = 1e-9
)

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// Clamp x between a and b, assume a <= b.
func Clamp(x, a, b float64) float64 {
	return math.Max(a, math.Min(x, b))
}

// Normal3 returns the normal of an SDF3 at a point (doesn't need to be on the surface).
// Computed by central differences of step eps along each axis.
func Normal3(s SDF3, p r3.Vec, eps float64) r3.Vec {
	return r3.Unit(r3.Vec{
		X: s.Evaluate(r3.Add(p, r3.Vec{X: eps})) - s.Evaluate(r3.Sub(p, r3.Vec{X: eps})),
		Y: s.Evaluate(r3.Add(p, r3.Vec{Y: eps})) - s.Evaluate(r3.Sub(p, r3.Vec{Y: eps})),
		Z: s.Evaluate(r3.Add(p, r3.Vec{Z: eps})) - s.Evaluate(r3.Sub(p, r3.Vec{Z: eps})),
	})
}

// EqualFloat64 reports whether a and b agree to a relative error of
// epsilon. Values near zero are compared on an absolute scale.
// See: http://floating-point-gui.de/errors/NearlyEqualsTest.java
func EqualFloat64(a, b, epsilon float64) bool {
	const minNormal = 0x1p-1022
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if a == 0 || b == 0 || diff < minNormal {
		return diff < epsilon*minNormal
	}
	return diff/math.Min(math.Abs(a)+math.Abs(b), math.MaxFloat64) < epsilon
}
