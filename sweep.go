package pumpsdf

import (
	"math"

	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// tube3 is a hollow round tube swept along a polyline.
type tube3 struct {
	path     []r3.Vec
	outer    float64
	inner    float64
	startDir r3.Vec
	endDir   r3.Vec
	bb       r3.Box
}

// Tube3D returns a tube of outer radius ro and inner radius ri swept along
// path. The tube ends are cut flat, perpendicular to the first and last
// segments. Zero length segments are skipped. An inner radius of zero
// gives a solid rod.
func Tube3D(path []r3.Vec, ro, ri float64) SDF3 {
	if ro <= 0 || ri < 0 || ri >= ro {
		panic("tube radii must satisfy 0 <= inner < outer")
	}
	pts := make([]r3.Vec, 0, len(path))
	for _, p := range path {
		if len(pts) > 0 && d3.EqualWithin(p, pts[len(pts)-1], tolerance) {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return empty3{}
	}
	s := tube3{path: pts, outer: ro, inner: ri}
	s.startDir = r3.Unit(r3.Sub(pts[1], pts[0]))
	n := len(pts)
	s.endDir = r3.Unit(r3.Sub(pts[n-1], pts[n-2]))
	bb := d3.Box{Min: d3.Set(pts).Min(), Max: d3.Set(pts).Max()}
	s.bb = r3.Box(bb.Enlarge(d3.Elem(2 * ro)))
	return &s
}

// Evaluate returns the minimum distance to the tube.
func (s *tube3) Evaluate(p r3.Vec) float64 {
	dmin := math.MaxFloat64
	nearest := 0
	for i := 1; i < len(s.path); i++ {
		if ds := segmentDistance(p, s.path[i-1], s.path[i]); ds < dmin {
			dmin, nearest = ds, i
		}
	}
	d := dmin - s.outer
	if s.inner > 0 {
		d = math.Max(d, s.inner-dmin)
	}
	// End caps only bound the segments they close, so a path that turns
	// back past its own ends is not cut off.
	if nearest == 1 {
		d = math.Max(d, -r3.Dot(r3.Sub(p, s.path[0]), s.startDir))
	}
	if nearest == len(s.path)-1 {
		d = math.Max(d, r3.Dot(r3.Sub(p, s.path[len(s.path)-1]), s.endDir))
	}
	return d
}

// Bounds returns the bounding box of the tube.
func (s *tube3) Bounds() r3.Box {
	return s.bb
}

func segmentDistance(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	t := Clamp(r3.Dot(r3.Sub(p, a), ab)/r3.Dot(ab, ab), 0, 1)
	return r3.Norm(r3.Sub(p, r3.Add(a, r3.Scale(t, ab))))
}
