package must2

import (
	"math"

	"github.com/soypat/pumpsdf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// circle is the 2d signed distance object for a circle.
type circle struct {
	radius float64
	bb     r2.Box
}

// Circle returns the SDF2 for a 2d circle centered at the origin.
func Circle(radius float64) *circle {
	if radius <= 0 {
		panic("radius <= 0")
	}
	d := d2.Elem(radius)
	return &circle{radius: radius, bb: r2.Box{Min: r2.Scale(-1, d), Max: d}}
}

// Evaluate returns the minimum distance to a 2d circle.
func (s *circle) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d circle.
func (s *circle) Bounds() r2.Box {
	return s.bb
}

// box is the 2d signed distance object for a rectangular box.
type box struct {
	half r2.Vec
	bb   r2.Box
}

// Box returns a 2d rectangle of the given size centered at the origin.
func Box(size r2.Vec) *box {
	if size.X <= 0 || size.Y <= 0 {
		panic("box size must be positive")
	}
	half := r2.Scale(0.5, size)
	return &box{half: half, bb: r2.Box{Min: r2.Scale(-1, half), Max: half}}
}

// Evaluate returns the minimum distance to a 2d box.
func (s *box) Evaluate(p r2.Vec) float64 {
	q := r2.Sub(d2.AbsElem(p), s.half)
	outside := r2.Norm(d2.MaxElem(q, r2.Vec{}))
	return outside + math.Min(math.Max(q.X, q.Y), 0)
}

// Bounds returns the bounding box for a 2d box.
func (s *box) Bounds() r2.Box {
	return s.bb
}
