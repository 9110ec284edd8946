package part

import (
	"math"

	"github.com/soypat/pumpsdf/form2"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SealSpec is the cartridge mechanical seal. The flange sits at y=0 and
// the cartridge extends Depth along +Y.
type SealSpec struct {
	Units
	FlangeOD        float64 `toml:"flange_diameter"`
	FlangeThickness float64 `toml:"flange_thickness"`
	BoreID          float64 `toml:"bore_diameter"`
	Depth           float64 `toml:"cartridge_depth"`
	BCD             float64 `toml:"bolt_circle_diameter"`
	Bolts           int     `toml:"bolts"`
	ShaftDiameter   float64 `toml:"shaft_diameter"`
	SpringRadius    float64 `toml:"spring_radius"`
	SpringHeight    float64 `toml:"spring_height"`
	SpringCoils     float64 `toml:"spring_coils"`
	SpringWire      float64 `toml:"spring_wire"`
}

func (SealSpec) Kind() Kind { return MechanicalSealCartridge }

func (s SealSpec) Validate() error {
	c := &checker{part: MechanicalSealCartridge.String()}
	s.Units.check(c)
	c.positive("bore_diameter", s.BoreID)
	c.require("bore_diameter", s.BoreID, s.BoreID+20 < s.FlangeOD)
	c.positive("flange_thickness", s.FlangeThickness)
	c.less("flange_thickness", s.FlangeThickness, s.Depth-10)
	c.less("flange_diameter", s.FlangeOD, s.BCD)
	c.count("bolts", s.Bolts, 1)
	c.positive("shaft_diameter", s.ShaftDiameter)
	c.less("shaft_diameter", s.ShaftDiameter, s.BoreID+10)
	c.positive("spring_radius", s.SpringRadius)
	c.positive("spring_height", s.SpringHeight)
	c.positive("spring_coils", s.SpringCoils)
	c.positive("spring_wire", s.SpringWire)
	c.less("spring_wire", s.SpringWire, s.SpringRadius)
	return c.err()
}

// Profile returns the cartridge body half section: a flange with a
// rounded outer corner, the gland wall and a tapered inboard end.
func (s SealSpec) Profile() ([]r2.Vec, error) {
	ri, ro, ft, d := s.BoreID/2, s.FlangeOD/2, s.FlangeThickness, s.Depth
	wall := ri + 10
	p := form2.NewProfile()
	p.Add(ri, 0)
	p.Add(ro-5, 0)
	p.Add(ro, 5).Arc(-5, 8)
	p.Add(ro, ft)
	p.Add(wall, ft)
	p.Add(wall, d-10)
	p.Add(ri, d)
	return p.Vertices()
}

func (s SealSpec) assemble(a *assembler) {
	d, ft, shaftR := s.Depth, s.FlangeThickness, s.ShaftDiameter/2
	pts, err := s.Profile()
	if err != nil {
		a.shape(form3.Primitive{}, err)
	}
	body := a.shape(form3.Lathe(pts, 64))
	a.solid(a.root, "Body", 0, body, ypos(0), ss316)

	sleeve := a.shape(form3.Cylinder(shaftR+4, shaftR, d, 32))
	a.solid(a.root, "ShaftSleeve", 0, sleeve, ypos(d/2), ss316)
	face := a.shape(form3.Ring(shaftR+4, shaftR+12, 64))
	a.solid(a.root, "RotatingFace", 0, face, flat(d-20), carbon)
	screw := a.shape(form3.Cylinder(3, 3, 10, 16))
	a.solid(a.root, "SetScrew", 0, screw, pos(shaftR+8, d-20, 0), springs)
	seat := a.shape(form3.Ring(shaftR+10, shaftR+20, 64))
	a.solid(a.root, "StationarySeat", 0, seat, flat(d-22), ceramic)
	groove := a.shape(form3.Torus(shaftR+15, 1.5, 16, 64, 2*math.Pi))
	a.solid(a.root, "ORingGroove", 0, groove, flat(d-22), ss316)
	for i, y := range []float64{10, d - 10} {
		ring := a.shape(form3.Torus(shaftR+1, 1, 16, 64, 2*math.Pi))
		a.solid(a.root, "ORing", i+1, ring, flat(y), elastomer)
	}
	spring := a.shape(form3.HelicalTube(s.SpringRadius, s.SpringHeight, s.SpringCoils, s.SpringWire))
	a.solid(a.root, "SpringPack", 0, spring, ypos(d/2), springs)
	clamp := a.shape(form3.Ring(s.FlangeOD/2-10, s.FlangeOD/2, 64))
	a.solid(a.root, "GlandClamp", 0, clamp, flat(ft), ss316)
	port := a.shape(form3.Cylinder(6.35, 6.35, 20, 16))
	a.solid(a.root, "LeakoffPort", 0, port, along(r3.Vec{X: s.FlangeOD/2 - 20, Y: ft + 10}), ss316)
	drain := a.shape(form3.Cylinder(2, 2, 10, 16))
	a.solid(a.root, "DrainChannel", 0, drain, along(r3.Vec{X: s.FlangeOD/2 - 30, Y: ft + 5}), ss316)

	fasteners := a.group(a.root, "Fasteners", scene.Pose{})
	for _, in := range a.instances(pattern.Angular(s.Bolts, s.BCD/2, 0)) {
		bolt := a.shape(form3.Cylinder(5, 5, ft+10, 16))
		a.solid(fasteners, "Bolt", in.Index+1, bolt, posed(r3.Add(in.Position, r3.Vec{Y: ft / 2}), r3.Vec{}), springs)
		nut := a.shape(form3.Cylinder(8, 8, 5, 6))
		a.solid(fasteners, "Nut", in.Index+1, nut, posed(r3.Add(in.Position, r3.Vec{Y: ft + 5}), r3.Vec{}), springs)
	}
	cover := a.shape(form3.Cylinder(s.BoreID, s.BoreID, 5, 64))
	a.solid(a.root, "ProtectiveCover", 0, cover, ypos(d-15), ss316)
	stub := a.shape(form3.Cylinder(s.FlangeOD/2, s.FlangeOD/2, d, 32))
	a.solid(a.root, "PlacementStub", 0, stub, ypos(d/2), helper)
}

// StudSpec is the parametric gland stud and nut set. The render surface
// may replace its geometry with an external asset bundle.
type StudSpec struct {
	Units
	Studs      int     `toml:"studs"`
	Circle     float64 `toml:"circle_radius"`
	StudRadius float64 `toml:"stud_radius"`
	StudLength float64 `toml:"stud_length"`
	NutRadius  float64 `toml:"nut_radius"`
	NutHeight  float64 `toml:"nut_height"`
	// Asset is the path of the pre-built stud and nut bundle.
	Asset string `toml:"asset"`
	// SpinRate is the display rotation in radians per second.
	SpinRate float64 `toml:"spin_rate"`
}

func (StudSpec) Kind() Kind { return GlandStudsAndNuts }

func (s StudSpec) Validate() error {
	c := &checker{part: GlandStudsAndNuts.String()}
	s.Units.check(c)
	c.count("studs", s.Studs, 1)
	c.positive("stud_radius", s.StudRadius)
	c.less("stud_radius", s.StudRadius, s.NutRadius)
	c.less("nut_radius", s.NutRadius, s.Circle)
	c.positive("stud_length", s.StudLength)
	c.positive("nut_height", s.NutHeight)
	c.require("nut_height", s.NutHeight, 2*s.NutHeight < s.StudLength)
	return c.err()
}

func (s StudSpec) assemble(a *assembler) {
	a.root.Spin = scene.Spin{Axis: r3.Vec{Y: 1}, Rate: s.SpinRate}
	y := s.StudLength/2 - s.NutHeight
	for _, in := range a.instances(pattern.Angular(s.Studs, s.Circle, 0)) {
		stud := a.shape(form3.Cylinder(s.StudRadius, s.StudRadius, s.StudLength, 16))
		a.solid(a.root, "Stud", in.Index+1, stud, posed(in.Position, r3.Vec{}), fastener)
		for j, ny := range []float64{-y, y} {
			nut := a.shape(form3.Cylinder(s.NutRadius, s.NutRadius, s.NutHeight, 6))
			a.solid(a.root, "Nut", 2*in.Index+j+1, nut, posed(r3.Add(in.Position, r3.Vec{Y: ny}), r3.Vec{}), nutSteel)
		}
	}
}
