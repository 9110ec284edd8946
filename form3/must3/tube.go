package must3

import (
	"math"

	"github.com/soypat/pumpsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tube sweeps a round section of radius outer along path. An inner
// radius greater than zero bores the tube.
func Tube(path []r3.Vec, outer, inner float64) pumpsdf.SDF3 {
	if len(path) < 2 {
		panic("tube path needs at least 2 points")
	}
	s := pumpsdf.Tube3D(path, outer, inner)
	if pumpsdf.IsEmpty(s) {
		panic("tube path has zero length")
	}
	return s
}

// QuadraticPath returns samples of the quadratic Bézier curve from a
// through control c to b, including both end points.
func QuadraticPath(a, c, b r3.Vec, segments int) []r3.Vec {
	if segments < 1 {
		panic("curve needs at least one segment")
	}
	pts := make([]r3.Vec, segments+1)
	for i := range pts {
		t := float64(i) / float64(segments)
		u := 1 - t
		pts[i] = r3.Add(r3.Add(r3.Scale(u*u, a), r3.Scale(2*u*t, c)), r3.Scale(t*t, b))
	}
	return pts
}

// HelixPath samples a helix about the Y axis starting on +X at y=0.
// There are segmentsPerCoil samples per turn: angle = 2π·coils·t and
// y = height·t for t in [0, 1].
func HelixPath(radius, height, coils float64, segmentsPerCoil int) []r3.Vec {
	if radius <= 0 || height <= 0 || coils <= 0 {
		panic("helix radius, height and coils must be positive")
	}
	if segmentsPerCoil < 3 {
		panic("helix needs at least 3 segments per coil")
	}
	n := int(math.Ceil(float64(segmentsPerCoil) * coils))
	pts := make([]r3.Vec, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		s, c := math.Sincos(2 * math.Pi * coils * t)
		pts[i] = r3.Vec{X: radius * c, Y: height * t, Z: radius * s}
	}
	return pts
}
