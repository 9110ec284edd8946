package part

import (
	"math"
	"strconv"

	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// GuardSpec is the perforated coupling guard, shipped as two bolted
// halves split on the YZ plane.
type GuardSpec struct {
	Units
	OD              float64 `toml:"outer_diameter"`
	ID              float64 `toml:"inner_diameter"`
	Length          float64 `toml:"length"`
	Segments        int     `toml:"segments"`
	Rows            int     `toml:"rows"`
	HolesPerHalf    int     `toml:"holes_per_half"`
	HoleRadius      float64 `toml:"hole_radius"`
	FlangeWidth     float64 `toml:"flange_width"`
	FlangeHeight    float64 `toml:"flange_height"`
	FlangeThickness float64 `toml:"flange_thickness"`
	BoltsPerFlange  int     `toml:"bolts_per_flange"`
	BoltRadius      float64 `toml:"bolt_radius"`
	BoltLength      float64 `toml:"bolt_length"`
}

func (GuardSpec) Kind() Kind { return CouplingGuard }

func (s GuardSpec) Validate() error {
	c := &checker{part: CouplingGuard.String()}
	s.Units.check(c)
	c.positive("inner_diameter", s.ID)
	c.less("inner_diameter", s.ID, s.OD)
	c.positive("length", s.Length)
	c.count("segments", s.Segments, 3)
	c.count("rows", s.Rows, 1)
	c.count("holes_per_half", s.HolesPerHalf, 1)
	c.positive("hole_radius", s.HoleRadius)
	c.less("hole_radius", s.HoleRadius, s.Length/float64(2*max(s.Rows, 1)))
	c.positive("flange_width", s.FlangeWidth)
	c.less("flange_width", s.FlangeWidth, s.Length/2)
	c.positive("flange_height", s.FlangeHeight)
	c.positive("flange_thickness", s.FlangeThickness)
	c.count("bolts_per_flange", s.BoltsPerFlange, 1)
	c.positive("bolt_radius", s.BoltRadius)
	c.positive("bolt_length", s.BoltLength)
	return c.err()
}

// Perforations returns the hole pattern split into the two halves. Every
// hole of the first half has a partner in the second rotated 180° about
// the guard axis.
func (s GuardSpec) Perforations() (half1, half2 []pattern.Instance, err error) {
	step := s.Length / float64(s.Rows)
	rows, err := pattern.Axial(s.Rows, -s.Length/2+step/2, step)
	if err != nil {
		return nil, nil, err
	}
	ring, err := pattern.Angular(2*s.HolesPerHalf, (s.OD+s.ID)/4, 0)
	if err != nil {
		return nil, nil, err
	}
	return pattern.SplitHalves(pattern.Grid(rows, ring))
}

func (s GuardSpec) assemble(a *assembler) {
	ro, ri := s.OD/2, s.ID/2
	half1, half2, err := s.Perforations()
	if err != nil {
		a.instances(nil, err)
	}
	wall := ro - ri
	for i, holes := range [][]pattern.Instance{half1, half2} {
		half := a.group(a.root, "Half_"+strconv.Itoa(i+1), scene.Pose{})
		// The second shell is the first one turned half a revolution.
		shell := scene.Pose{Rotation: r3.Vec{Y: float64(i) * math.Pi}}
		outer := a.shape(form3.CylinderSector(ro, ro, s.Length, s.Segments, 0, math.Pi))
		a.solid(half, "Shell", i+1, outer, shell, guardSteel)
		inner := a.shape(form3.CylinderSector(ri, ri, s.Length, s.Segments, 0, math.Pi))
		a.solid(half, "Shell_Bore", i+1, inner, shell, bore)
		for j, in := range holes {
			h := a.shape(form3.Cylinder(s.HoleRadius, s.HoleRadius, wall+1, 16))
			a.solid(half, "Perforation", len(holes)*i+j+1, h, radial(in), bore)
		}
	}

	y := s.Length/2 - s.FlangeWidth/2
	for i, fy := range []float64{-y, y} {
		flange := a.shape(form3.Box(s.FlangeThickness, s.FlangeWidth, s.FlangeHeight))
		a.solid(a.root, "Flange", i+1, flange, ypos(fy), guardSteel)
		for j := 0; j < s.BoltsPerFlange; j++ {
			x := s.FlangeThickness/2 + s.BoltLength/2
			if j >= (s.BoltsPerFlange+1)/2 {
				x = -x
			}
			z := s.FlangeHeight / 4
			if j%2 == 1 {
				z = -z
			}
			bolt := a.shape(form3.Cylinder(s.BoltRadius, s.BoltRadius, s.BoltLength, 6))
			a.solid(a.root, "Bolt", i*s.BoltsPerFlange+j+1, bolt, along(r3.Vec{X: x, Y: fy, Z: z}), fastener)
		}
	}
}
