package part

import (
	"github.com/soypat/pumpsdf/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

// PipeSpec is the balance leak-off line: a tube bent once through a
// quadratic arc, flanged at both ends.
type PipeSpec struct {
	Units
	Outer           float64 `toml:"outer_radius"`
	Inner           float64 `toml:"inner_radius"`
	Length          float64 `toml:"length"`
	BendRadius      float64 `toml:"bend_radius"`
	FlangeRadius    float64 `toml:"flange_radius"`
	FlangeThickness float64 `toml:"flange_thickness"`
	Weld            float64 `toml:"weld_length"`
}

func (PipeSpec) Kind() Kind { return BalanceLeakoffPipe }

func (s PipeSpec) Validate() error {
	c := &checker{part: BalanceLeakoffPipe.String()}
	s.Units.check(c)
	c.positive("inner_radius", s.Inner)
	c.less("inner_radius", s.Inner, s.Outer)
	c.less("outer_radius", s.Outer, s.FlangeRadius)
	c.positive("bend_radius", s.BendRadius)
	c.less("bend_radius", s.BendRadius, s.Length/2)
	c.positive("flange_thickness", s.FlangeThickness)
	c.positive("weld_length", s.Weld)
	return c.err()
}

// Path returns the pipe route: a straight run into the origin, a bend
// rising two bend radii and a straight run out.
func (s PipeSpec) Path() form3.Path {
	l, b := s.Length, s.BendRadius
	return form3.Path{
		LeadIn:       [2]r3.Vec{{X: -l/2 + b}, {}},
		Bend:         [3]r3.Vec{{}, {X: b, Y: b}, {X: b, Y: 2 * b}},
		LeadOut:      [2]r3.Vec{{X: b, Y: 2 * b}, {X: l/2 - b, Y: 2 * b}},
		BendSegments: 32,
	}
}

func (s PipeSpec) assemble(a *assembler) {
	path := s.Path()
	tube := a.shape(form3.SweptTube(path, s.Outer, 0, 16))
	a.solid(a.root, "Tube", 0, tube, ypos(0), silver)
	inner := a.shape(form3.SweptTube(path, s.Inner, 0, 16))
	a.solid(a.root, "Tube_Bore", 0, inner, ypos(0), bore)
	ends := []r3.Vec{path.LeadIn[0], path.LeadOut[1]}
	for i, p := range ends {
		f := a.shape(form3.Cylinder(s.FlangeRadius, s.FlangeRadius, s.FlangeThickness, 32))
		a.solid(a.root, "Flange", i+1, f, along(p), silver)
		w := a.shape(form3.Cylinder(s.Outer+1, s.Outer+1, s.Weld, 16))
		a.solid(a.root, "WeldBead", i+1, w, along(p), weld)
	}
}
