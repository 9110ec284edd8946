package must2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	sqrtHalf  = 0.7071067811865476
	tolerance = 1e-9
)

func sign(f float64) float64 {
	if f == 0 {
		return 0
	}
	return math.Copysign(1, f)
}

// rotate rotates v counter-clockwise by theta radians.
func rotate(v r2.Vec, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}
