package must3

import (
	"math"

	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/form2/must2"
	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// FacetLimit is the largest segment count for which cylinders are modelled
// as prisms rather than smooth solids of revolution.
const FacetLimit = 8

// box is a 3d box centered at the origin.
type box struct {
	half r3.Vec
	bb   r3.Box
}

// Box returns an SDF3 for a box with the given width (X), height (Y) and
// depth (Z), centered at the origin.
func Box(size r3.Vec) *box {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("box size <= 0")
	}
	half := r3.Scale(0.5, size)
	return &box{half: half, bb: r3.Box{Min: r3.Scale(-1, half), Max: half}}
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(p), s.half)
	return r3.Norm(d3.MaxElem(q, r3.Vec{})) + math.Min(d3.Max(q), 0)
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return s.bb
}

// Cylinder returns a cylinder or truncated cone of the given height
// centered on the origin with its axis along Y. A segment count of
// FacetLimit or less with equal radii yields a regular prism, which is
// how hex nuts are modelled.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) pumpsdf.SDF3 {
	return CylinderSector(radiusTop, radiusBottom, height, segments, 0, 2*math.Pi)
}

// CylinderSector returns the part of a cylinder spanning thetaLength
// radians from thetaStart, measured in the XZ plane from +Z towards +X.
func CylinderSector(radiusTop, radiusBottom, height float64, segments int, thetaStart, thetaLength float64) pumpsdf.SDF3 {
	if radiusTop < 0 || radiusBottom < 0 || radiusTop+radiusBottom == 0 {
		panic("cylinder radii must be non-negative and not both zero")
	}
	if height <= 0 {
		panic("cylinder height <= 0")
	}
	if segments < 3 {
		panic("cylinder needs at least 3 segments")
	}
	if thetaLength <= 0 || thetaLength > 2*math.Pi+1e-9 {
		panic("cylinder sector length out of range (0, 2π]")
	}
	full := thetaLength >= 2*math.Pi-1e-9
	if full && segments <= FacetLimit && radiusTop == radiusBottom {
		return prism(segments, radiusTop, height)
	}
	h := height / 2
	profile := must2.AxialProfile([]r2.Vec{
		{X: 0, Y: -h},
		{X: radiusBottom, Y: -h},
		{X: radiusTop, Y: h},
		{X: 0, Y: h},
	})
	return pumpsdf.RevolveSector3D(profile, thetaStart, thetaLength)
}

// prism is a regular n-gon extruded along Y with a vertex on +Z.
func prism(n int, radius, height float64) pumpsdf.SDF3 {
	v := must2.Nagon(n, radius)
	// Rotate so the first vertex lies on +Z of the solid.
	for i := range v {
		v[i] = r2.Vec{X: -v[i].Y, Y: v[i].X}
	}
	return pumpsdf.Extrude3D(must2.Polygon(v), height)
}

// Lathe revolves a profile of (radius, axial) points about the Y axis.
// The profile is closed by joining the last point back to the first.
func Lathe(points []r2.Vec) pumpsdf.SDF3 {
	for _, p := range points {
		if p.X < 0 {
			panic("lathe profile radius < 0")
		}
	}
	return pumpsdf.Revolve3D(must2.AxialProfile(points))
}

// ring is a flat annulus in the XY plane with a small thickness along Z.
type ring struct {
	inner, outer, half float64
	bb                 r3.Box
}

// Ring returns a thin annular disc lying in the XY plane.
func Ring(inner, outer, thickness float64) *ring {
	if inner < 0 || outer <= inner {
		panic("ring radii must satisfy 0 <= inner < outer")
	}
	if thickness <= 0 {
		panic("ring thickness <= 0")
	}
	s := ring{inner: inner, outer: outer, half: thickness / 2}
	s.bb = r3.Box{
		Min: r3.Vec{X: -outer, Y: -outer, Z: -s.half},
		Max: r3.Vec{X: outer, Y: outer, Z: s.half},
	}
	return &s
}

// Evaluate returns the minimum distance to a ring.
func (s *ring) Evaluate(p r3.Vec) float64 {
	r := math.Hypot(p.X, p.Y)
	mid := (s.inner + s.outer) / 2
	a := math.Abs(r-mid) - (s.outer-s.inner)/2
	b := math.Abs(p.Z) - s.half
	return math.Min(math.Max(a, b), 0) + math.Hypot(math.Max(a, 0), math.Max(b, 0))
}

// Bounds returns the bounding box of a ring.
func (s *ring) Bounds() r3.Box {
	return s.bb
}

// torus is a torus about the Z axis, optionally spanning only part of
// a full turn.
type torus struct {
	major, minor float64
	arc          float64 // zero for a closed torus.
	bb           r3.Box
}

// Torus returns a torus whose centerline circle of radius major lies in
// the XY plane. An arc shorter than 2π starts on +X and runs towards +Y.
func Torus(major, minor, arc float64) *torus {
	if minor <= 0 || major <= minor {
		panic("torus radii must satisfy 0 < minor < major")
	}
	if arc <= 0 {
		panic("torus arc <= 0")
	}
	s := torus{major: major, minor: minor}
	if arc < 2*math.Pi-1e-9 {
		s.arc = arc
	}
	r := major + minor
	s.bb = r3.Box{Min: r3.Vec{X: -r, Y: -r, Z: -minor}, Max: r3.Vec{X: r, Y: r, Z: minor}}
	return &s
}

// Evaluate returns the minimum distance to a torus.
func (s *torus) Evaluate(p r3.Vec) float64 {
	if s.arc != 0 {
		phi := math.Atan2(p.Y, p.X)
		if phi < 0 {
			phi += 2 * math.Pi
		}
		if phi > s.arc {
			// Closest centerline point is one of the arc ends.
			e0 := r3.Vec{X: s.major}
			sn, cs := math.Sincos(s.arc)
			e1 := r3.Vec{X: s.major * cs, Y: s.major * sn}
			return math.Min(r3.Norm(r3.Sub(p, e0)), r3.Norm(r3.Sub(p, e1))) - s.minor
		}
	}
	q := math.Hypot(p.X, p.Y) - s.major
	return math.Hypot(q, p.Z) - s.minor
}

// Bounds returns the bounding box of a torus.
func (s *torus) Bounds() r3.Box {
	return s.bb
}
