// Package pumpsdf implements the signed distance function kernel used to
// model multistage feed-pump components. Solids of revolution spin about
// the +Y axis so that a part's centerline is its local Y axis.
package pumpsdf

import (
	"math"
	"strconv"

	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3D signed distance utility functions.

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

type SDF3Union interface {
	SDF3
	SetMin(MinFunc)
}

type SDF3Diff interface {
	SDF3
	SetMax(MaxFunc)
}

// revolution3 solid of revolution about the Y axis, SDF2 to SDF3.
type revolution3 struct {
	sdf    SDF2
	start  float64
	length float64 // zero for a full revolution.
	bb     r3.Box
}

// Revolve3D returns an SDF3 for a full solid of revolution of a profile
// about the Y axis. The profile's X coordinate is the radius and its Y
// coordinate the axial position. Profile points at negative X are ignored.
// The distance on the axis is the profile's distance at X=0, so a profile
// whose edge lies on the axis reads zero there instead of negative. Extend
// such profiles across the axis or build them with must2.AxialProfile.
func Revolve3D(sdf SDF2) SDF3 {
	return RevolveSector3D(sdf, 0, tau)
}

// RevolveSector3D returns a partial solid of revolution spanning
// thetaLength radians starting at thetaStart. Angles are measured in the
// XZ plane from +Z towards +X.
func RevolveSector3D(sdf SDF2, thetaStart, thetaLength float64) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	if thetaLength <= 0 {
		return empty3{}
	}
	s := revolution3{sdf: sdf}
	if thetaLength < tau-tolerance {
		s.start = math.Mod(thetaStart, tau)
		if s.start < 0 {
			s.start += tau
		}
		s.length = thetaLength
	}
	bb := sdf.Bounds()
	l := math.Max(math.Abs(bb.Min.X), math.Abs(bb.Max.X))
	s.bb = r3.Box{
		Min: r3.Vec{X: -l, Y: bb.Min.Y, Z: -l},
		Max: r3.Vec{X: l, Y: bb.Max.Y, Z: l},
	}
	return &s
}

// Evaluate returns the minimum distance to a solid of revolution.
func (s *revolution3) Evaluate(p r3.Vec) float64 {
	r := math.Hypot(p.X, p.Z)
	a := s.sdf.Evaluate(r2.Vec{X: r, Y: p.Y})
	if s.length == 0 {
		return a
	}
	phi := math.Mod(math.Atan2(p.X, p.Z)-s.start, tau)
	if phi < 0 {
		phi += tau
	}
	var b float64
	if phi <= s.length {
		edge := math.Min(phi, s.length-phi)
		b = -r * math.Sin(math.Min(edge, pi/2))
	} else {
		edge := math.Min(phi-s.length, tau-phi)
		b = r * math.Sin(math.Min(edge, pi/2))
	}
	return math.Max(a, b)
}

// Bounds returns the bounding box for a solid of revolution.
func (s *revolution3) Bounds() r3.Box {
	return s.bb
}

// extrude3 extrudes an SDF2 drawn on the XZ plane along the Y axis.
type extrude3 struct {
	sdf    SDF2
	height float64
	bb     r3.Box
}

// Extrude3D does a linear extrude of sdf along Y, centered on the origin.
// The profile's X and Y coordinates map to the solid's X and Z.
func Extrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	s := extrude3{sdf: sdf, height: height / 2}
	bb := sdf.Bounds()
	s.bb = r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: -s.height, Z: bb.Min.Y},
		Max: r3.Vec{X: bb.Max.X, Y: s.height, Z: bb.Max.Y},
	}
	return &s
}

// Evaluate returns the minimum distance to an extrusion.
func (s *extrude3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Z})
	b := math.Abs(p.Y) - s.height
	d := math.Min(math.Max(a, b), 0)
	a = math.Max(a, 0)
	b = math.Max(b, 0)
	return d + math.Hypot(a, b)
}

// Bounds returns the bounding box for an extrusion.
func (s *extrude3) Bounds() r3.Box {
	return s.bb
}

// transform3 is an SDF3 transformed with an affine matrix.
type transform3 struct {
	sdf     SDF3
	inverse d3.Transform
	stretch float64
	bb      r3.Box
}

// Transform3D applies a transformation matrix to an SDF3.
// Distances are rescaled by the transform's mean stretch, which is exact
// for rigid motions and uniform scaling.
func Transform3D(sdf SDF3, t d3.Transform) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	if t == (d3.Transform{}) {
		return sdf
	}
	if _, ok := sdf.(empty3); ok {
		return empty3{center: t.Transform(d3.Box(sdf.Bounds()).Center())}
	}
	s := transform3{
		sdf:     sdf,
		inverse: t.Inv(),
		stretch: t.Stretch(),
	}
	s.bb = r3.Box(t.TransformBox(d3.Box(sdf.Bounds())))
	return &s
}

// Evaluate returns the minimum distance to a transformed SDF3.
func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.Transform(p)) * s.stretch
}

// Bounds returns the bounding box of a transformed SDF3.
func (s *transform3) Bounds() r3.Box {
	return s.bb
}

// Translate3D moves an SDF3 by v.
func Translate3D(sdf SDF3, v r3.Vec) SDF3 {
	return Transform3D(sdf, d3.Transform{}.Translate(v))
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	min MinFunc
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects. The union of no
// objects is empty and the union of one object is the object itself.
// Union3D will panic if an argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3Union {
	members := make([]SDF3, 0, len(sdf))
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
		if _, ok := x.(empty3); ok {
			continue
		}
		members = append(members, x)
	}
	if len(members) == 0 {
		return empty3{}
	}
	s := union3{sdf: members, min: math.Min}
	bb := d3.Box(members[0].Bounds())
	for _, x := range members[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *union3) SetMin(min MinFunc) {
	s.min = min
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// The result keeps the bounds of s0.
// Difference3D will panic if one any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3Diff {
	if s1 == nil || s0 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, max: math.Max}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *diff3) SetMax(max MaxFunc) {
	s.max = max
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *diff3) Bounds() r3.Box {
	return s.s0.Bounds()
}

// intersection3 is the intersection of two SDF3s.
type intersection3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
	bb  r3.Box
}

// Intersect3D returns the intersection of two SDF3s.
// Intersect3D will panic if any of the arguments are nil.
func Intersect3D(s0, s1 SDF3) SDF3Diff {
	if s0 == nil || s1 == nil {
		panic("nil argument to Intersect3D")
	}
	s := intersection3{s0: s0, s1: s1, max: math.Max}
	a, b := s0.Bounds(), s1.Bounds()
	s.bb = r3.Box{
		Min: d3.MaxElem(a.Min, b.Min),
		Max: d3.MinElem(a.Max, b.Max),
	}
	return &s
}

// Evaluate returns the minimum distance to the SDF3 intersection.
func (s *intersection3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *intersection3) SetMax(max MaxFunc) {
	s.max = max
}

// Bounds returns the bounding box of an SDF3 intersection.
func (s *intersection3) Bounds() r3.Box {
	return s.bb
}

// offset3 offsets the distance function of an existing SDF3.
type offset3 struct {
	sdf      SDF3
	distance float64
	bb       r3.Box
}

// Offset3D returns an SDF3 that offsets the distance function of another SDF3.
func Offset3D(sdf SDF3, offset float64) SDF3 {
	s := offset3{sdf: sdf, distance: offset}
	bb := d3.Box(sdf.Bounds())
	s.bb = r3.Box(bb.Enlarge(d3.Elem(2 * offset)))
	return &s
}

// Evaluate returns the minimum distance to an offset SDF3.
func (s *offset3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(p) - s.distance
}

// Bounds returns the bounding box of an offset SDF3.
func (s *offset3) Bounds() r3.Box {
	return s.bb
}

// IsEmpty reports whether s is the empty solid.
func IsEmpty(s SDF3) bool {
	_, ok := s.(empty3)
	return ok
}

// Empty3D returns a solid that contains no points.
func Empty3D() SDF3 { return empty3{} }

type empty3 struct {
	center r3.Vec
}

var _ SDF3Union = empty3{}

func (e empty3) Evaluate(r3.Vec) float64 {
	return math.MaxFloat64
}

func (e empty3) Bounds() r3.Box {
	return r3.Box{
		Min: e.center,
		Max: e.center,
	}
}

func (e empty3) SetMin(MinFunc) {}
func (e empty3) SetMax(MaxFunc) {}
