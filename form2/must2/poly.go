package must2

import (
	"errors"
	"math"

	"github.com/soypat/pumpsdf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygon is an SDF2 made from a closed set of line segments.
type polygon struct {
	vertex []r2.Vec  // vertices
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	seam   []bool    // segments excluded from the distance, see AxialProfile
	bb     r2.Box    // bounding box
}

// Polygon returns an SDF2 made from a closed set of line segments.
// The loop is closed if the first and last vertices differ.
func Polygon(vertex []r2.Vec) *polygon {
	s := polygon{}
	s.vertex = make([]r2.Vec, 0, len(vertex)+1)
	for _, v := range vertex {
		// repeated points are common in lathe profiles.
		if len(s.vertex) > 0 && d2.EqualWithin(v, s.vertex[len(s.vertex)-1], tolerance) {
			continue
		}
		s.vertex = append(s.vertex, v)
	}
	n := len(s.vertex)
	if n > 1 && d2.EqualWithin(s.vertex[0], s.vertex[n-1], tolerance) {
		n--
		s.vertex = s.vertex[:n]
	}
	if n < 3 {
		panic("number of distinct vertices < 3")
	}
	s.vertex = append(s.vertex, s.vertex[0])
	nsegs := len(s.vertex) - 1
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		s.vector[i] = r2.Scale(1/s.length[i], l)
	}
	s.bb = r2.Box(d2.Set(s.vertex).Bounds())
	return &s
}

// AxialProfile returns the polygon SDF of a lathe profile whose X
// coordinate is a radius. Segments lying on the X=0 axis become seams of
// the solid of revolution: they bound the inside test but do not
// contribute to the distance.
func AxialProfile(vertex []r2.Vec) *polygon {
	s := Polygon(vertex)
	s.seam = make([]bool, len(s.length))
	for i := range s.seam {
		s.seam[i] = math.Abs(s.vertex[i].X) < tolerance && math.Abs(s.vertex[i+1].X) < tolerance
	}
	return s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // d^2 to polygon (>0)
	wn := 0               // winding number (inside/outside)

	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])
	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]
		pa := pb
		pb = r2.Sub(p, b)

		t := r2.Dot(pa, s.vector[i])                                  // projection onto line
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X}) // normal distance to line
		switch {
		case s.seam != nil && s.seam[i]:
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(pb))
		default:
			dd = math.Min(dd, dn*dn)
		}
		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 {
				wn++
			}
		} else if b.Y <= p.Y && dn > 0 {
			wn--
		}
	}
	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box {
	return s.bb
}

// ProfileBuilder accumulates the vertices of a lathe or extrusion profile.
type ProfileBuilder struct {
	closed bool
	vlist  []Vertex
}

// Vertex is a profile vertex. Its methods modify how the vertex, or the
// segment ending at it, is resolved.
type Vertex struct {
	relative bool
	vtype    vertexType
	vertex   r2.Vec
	control  r2.Vec // quadratic control point
	facets   int
	radius   float64
}

type vertexType int

const (
	vtNormal vertexType = iota
	vtSmooth            // round the corner
	vtArc               // replace incoming segment with an arc
	vtQuad              // replace incoming segment with a quadratic curve
)

// Rel positions the vertex relative to the prior vertex.
func (v *Vertex) Rel() *Vertex {
	v.relative = true
	return v
}

// Chamfer cuts the corner at the vertex with a single 45 degree facet.
// The size is exact for right angle corners.
func (v *Vertex) Chamfer(size float64) *Vertex {
	if size != 0 {
		v.radius = size * sqrtHalf
		v.facets = 1
		v.vtype = vtSmooth
	}
	return v
}

// Arc replaces the segment ending at the vertex with a circular arc.
// The sign of radius selects the side of the chord the arc bulges to.
func (v *Vertex) Arc(radius float64, facets int) *Vertex {
	if radius != 0 && facets != 0 {
		v.radius = radius
		v.facets = facets
		v.vtype = vtArc
	}
	return v
}

// NewProfile returns an empty, closed profile builder.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{closed: true}
}

// Open marks the profile as an open polyline, e.g. a sweep path.
func (p *ProfileBuilder) Open() *ProfileBuilder {
	p.closed = false
	return p
}

// AddV2 appends a vertex to the profile.
func (p *ProfileBuilder) AddV2(x r2.Vec) *Vertex {
	p.vlist = append(p.vlist, Vertex{vertex: x})
	return &p.vlist[len(p.vlist)-1]
}

// Add appends an x,y vertex to the profile.
func (p *ProfileBuilder) Add(x, y float64) *Vertex {
	return p.AddV2(r2.Vec{X: x, Y: y})
}

// QuadTo appends a quadratic Bézier curve from the last vertex through
// control point c to (x, y), sampled with the given number of segments.
func (p *ProfileBuilder) QuadTo(c r2.Vec, x, y float64, segments int) *Vertex {
	if segments < 1 {
		panic("quadratic curve needs at least one segment")
	}
	v := p.Add(x, y)
	v.vtype = vtQuad
	v.control = c
	v.facets = segments
	return v
}

func (p *ProfileBuilder) next(i int) *Vertex {
	if i == len(p.vlist)-1 {
		if p.closed {
			return &p.vlist[0]
		}
		return nil
	}
	return &p.vlist[i+1]
}

func (p *ProfileBuilder) prev(i int) *Vertex {
	if i == 0 {
		if p.closed {
			return &p.vlist[len(p.vlist)-1]
		}
		return nil
	}
	return &p.vlist[i-1]
}

// relToAbs converts relative vertices to absolute vertices.
func (p *ProfileBuilder) relToAbs() error {
	for i := range p.vlist {
		v := &p.vlist[i]
		if !v.relative {
			continue
		}
		if i == 0 {
			return errors.New("first profile vertex cannot be relative")
		}
		v.vertex = r2.Add(v.vertex, p.vlist[i-1].vertex)
		v.relative = false
	}
	return nil
}

// expandCurves replaces arc and quadratic segments with line segments.
func (p *ProfileBuilder) expandCurves() {
	out := make([]Vertex, 0, len(p.vlist))
	for i, v := range p.vlist {
		pv := p.prev(i)
		if pv == nil || (v.vtype != vtArc && v.vtype != vtQuad) {
			out = append(out, v)
			continue
		}
		a, b := pv.vertex, v.vertex
		var pts []r2.Vec
		if v.vtype == vtQuad {
			pts = quadPoints(a, v.control, b, v.facets)
		} else {
			pts = arcPoints(a, b, v.radius, v.facets)
		}
		for _, pt := range pts {
			out = append(out, Vertex{vertex: pt})
		}
		v.vtype = vtNormal
		out = append(out, v)
	}
	p.vlist = out
}

// quadPoints returns the interior samples of a quadratic Bézier curve.
func quadPoints(a, c, b r2.Vec, segments int) []r2.Vec {
	pts := make([]r2.Vec, 0, segments-1)
	for j := 1; j < segments; j++ {
		t := float64(j) / float64(segments)
		u := 1 - t
		pts = append(pts, r2.Add(r2.Add(r2.Scale(u*u, a), r2.Scale(2*u*t, c)), r2.Scale(t*t, b)))
	}
	return pts
}

// arcPoints returns the interior samples of a circular arc from a to b.
func arcPoints(a, b r2.Vec, radius float64, facets int) []r2.Vec {
	side := sign(radius)
	radius = math.Abs(radius)
	ba := r2.Unit(r2.Sub(b, a))
	n := r2.Scale(side, r2.Vec{X: ba.Y, Y: -ba.X})
	mid := r2.Scale(0.5, r2.Add(a, b))
	dMid := r2.Norm(r2.Sub(mid, a))
	if dMid > radius {
		panic("arc radius smaller than half the chord")
	}
	c := r2.Add(mid, r2.Scale(math.Sqrt(radius*radius-dMid*dMid), n))
	ac := r2.Unit(r2.Sub(a, c))
	bc := r2.Unit(r2.Sub(b, c))
	dtheta := -side * math.Acos(d2Clamp(r2.Dot(ac, bc))) / float64(facets)
	rv := rotate(r2.Sub(a, c), dtheta)
	pts := make([]r2.Vec, 0, facets-1)
	for j := 1; j < facets; j++ {
		pts = append(pts, r2.Add(c, rv))
		rv = rotate(rv, dtheta)
	}
	return pts
}

func d2Clamp(x float64) float64 { return math.Max(-1, math.Min(1, x)) }

// smoothVertex rounds the i-th vertex, returning true if it was replaced.
func (p *ProfileBuilder) smoothVertex(i int) bool {
	v := p.vlist[i]
	if v.vtype != vtSmooth {
		return false
	}
	p.vlist[i].vtype = vtNormal
	vn := p.next(i)
	vp := p.prev(i)
	if vp == nil || vn == nil {
		// can't smooth the endpoints of an open profile
		return false
	}
	v0 := r2.Unit(r2.Sub(vp.vertex, v.vertex))
	v1 := r2.Unit(r2.Sub(vn.vertex, v.vertex))
	theta := math.Acos(d2Clamp(r2.Dot(v0, v1)))
	d1 := v.radius / math.Tan(theta/2.0)
	if d1 > r2.Norm(r2.Sub(vp.vertex, v.vertex)) || d1 > r2.Norm(r2.Sub(vn.vertex, v.vertex)) {
		// radius too large for the adjacent segments
		return false
	}
	p0 := r2.Add(v.vertex, r2.Scale(d1, v0))
	dc := v.radius / math.Sin(theta/2.0)
	c := r2.Add(v.vertex, r2.Scale(dc, r2.Unit(r2.Add(v0, v1))))
	dtheta := sign(r2.Cross(v1, v0)) * (math.Pi - theta) / float64(v.facets)
	rv := r2.Sub(p0, c)
	points := make([]Vertex, v.facets+1)
	for j := range points {
		points[j] = Vertex{vertex: r2.Add(c, rv)}
		rv = rotate(rv, dtheta)
	}
	p.vlist = append(p.vlist[:i], append(points, p.vlist[i+1:]...)...)
	return true
}

// Vertices resolves relative, curved and smoothed vertices and returns
// the profile's points.
func (p *ProfileBuilder) Vertices() ([]r2.Vec, error) {
	if len(p.vlist) == 0 {
		return nil, errors.New("empty profile")
	}
	if err := p.relToAbs(); err != nil {
		return nil, err
	}
	p.expandCurves()
	for done := false; !done; {
		done = true
		for i := range p.vlist {
			if p.smoothVertex(i) {
				done = false
				break
			}
		}
	}
	v := make([]r2.Vec, len(p.vlist))
	for i, pv := range p.vlist {
		v[i] = pv.vertex
	}
	return v, nil
}

// Nagon return the vertices of a N sided regular polygon, the first
// vertex lying on +X.
func Nagon(n int, radius float64) d2.Set {
	if n < 3 {
		panic("polygon needs at least 3 sides")
	}
	if radius <= 0 {
		panic("polygon radius <= 0")
	}
	v := make(d2.Set, n)
	for i := range v {
		v[i] = d2.PolarToXY(radius, 2*math.Pi*float64(i)/float64(n))
	}
	return v
}
