package part

import (
	"math"

	"github.com/soypat/pumpsdf/form2"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// DiffuserSpec is a lathed diffuser ring carrying radial guide vanes.
type DiffuserSpec struct {
	Units
	Inner         float64 `toml:"inner_radius"`
	Outer         float64 `toml:"outer_radius"`
	Length        float64 `toml:"length"`
	Segments      int     `toml:"segments"`
	Vanes         int     `toml:"vanes"`
	VanePitch     float64 `toml:"vane_pitch"`
	VaneSpan      float64 `toml:"vane_span"`
	VaneAxial     float64 `toml:"vane_axial"`
	VaneThickness float64 `toml:"vane_thickness"`
}

func (DiffuserSpec) Kind() Kind { return Diffuser }

func (s DiffuserSpec) Validate() error {
	c := &checker{part: Diffuser.String()}
	s.Units.check(c)
	c.positive("inner_radius", s.Inner)
	c.less("inner_radius", s.Inner, s.Outer)
	c.positive("length", s.Length)
	c.count("segments", s.Segments, 3)
	c.count("vanes", s.Vanes, 1)
	c.positive("vane_pitch", s.VanePitch)
	c.positive("vane_span", s.VaneSpan)
	c.positive("vane_axial", s.VaneAxial)
	c.positive("vane_thickness", s.VaneThickness)
	return c.err()
}

func (s DiffuserSpec) assemble(a *assembler) {
	ring := a.shape(form3.Lathe([]r2.Vec{
		{X: s.Inner, Y: 0}, {X: s.Outer, Y: 0}, {X: s.Outer, Y: s.Length}, {X: s.Inner, Y: s.Length},
	}, s.Segments))
	a.solid(a.root, "Ring", 0, ring, ypos(0), castSteel)
	vanes := a.instances(pattern.Angular(s.Vanes, s.VanePitch, 0))
	for _, in := range pattern.Translate(vanes, r3.Vec{Y: s.Length / 2}) {
		v := a.shape(form3.Box(s.VaneSpan, s.VaneAxial, s.VaneThickness))
		a.solid(a.root, "Vane", in.Index+1, v, at(in), castSteel)
	}
}

// CasingSpec is one stage casing ring with its diffuser seat, dowel holes
// and bolt bosses.
type CasingSpec struct {
	Units
	OD          float64 `toml:"outer_diameter"`
	ID          float64 `toml:"inner_diameter"`
	Thickness   float64 `toml:"thickness"`
	SeatStep    float64 `toml:"seat_step"`
	Segments    int     `toml:"segments"`
	Dowels      int     `toml:"dowels"`
	DowelRadius float64 `toml:"dowel_radius"`
	DowelDepth  float64 `toml:"dowel_depth"`
	Bolts       int     `toml:"bolts"`
	BossRadius  float64 `toml:"boss_radius"`
	BossHeight  float64 `toml:"boss_height"`
	HoleRadius  float64 `toml:"hole_radius"`
}

func (CasingSpec) Kind() Kind { return StageCasing }

func (s CasingSpec) Validate() error {
	c := &checker{part: StageCasing.String()}
	s.Units.check(c)
	c.positive("inner_diameter", s.ID)
	c.less("inner_diameter", s.ID, s.OD)
	c.positive("thickness", s.Thickness)
	c.positive("seat_step", s.SeatStep)
	c.require("seat_step", s.SeatStep, 1.5*s.SeatStep < s.ID/2)
	c.count("segments", s.Segments, 3)
	c.count("dowels", s.Dowels, 1)
	c.positive("dowel_radius", s.DowelRadius)
	c.positive("dowel_depth", s.DowelDepth)
	c.count("bolts", s.Bolts, 1)
	c.positive("hole_radius", s.HoleRadius)
	c.less("hole_radius", s.HoleRadius, s.BossRadius)
	c.less("boss_radius", s.BossRadius, s.boltCircle())
	c.positive("boss_height", s.BossHeight)
	return c.err()
}

func (s CasingSpec) boltCircle() float64 { return s.OD/2 - 5 }

// Profile returns the casing half section: a locating shoulder, the
// stepped diffuser seat and a curved flow cut.
func (s CasingSpec) Profile() ([]r2.Vec, error) {
	ir, or, t, st := s.ID/2, s.OD/2, s.Thickness, s.SeatStep
	p := form2.NewProfile()
	p.Add(ir, 0)
	p.Add(ir, t/8)
	p.Add(ir-st, t/8)
	p.Add(ir-st, 3*t/8)
	p.QuadTo(r2.Vec{X: ir - 1.5*st, Y: t / 2}, ir-st, 5*t/8, 16)
	p.Add(ir-st, 7*t/8)
	p.Add(ir, 7*t/8)
	p.Add(ir, t)
	p.Add(or, t)
	p.Add(or, 0)
	return p.Vertices()
}

func (s CasingSpec) assemble(a *assembler) {
	pts, err := s.Profile()
	if err != nil {
		a.shape(form3.Primitive{}, err)
	}
	ring := a.shape(form3.Lathe(pts, s.Segments))
	a.solid(a.root, "Ring", 0, ring, ypos(0), castSteel)

	dowels := a.instances(pattern.Angular(s.Dowels, s.OD/2, 0))
	for _, in := range pattern.Translate(dowels, r3.Vec{Y: s.Thickness / 2}) {
		h := a.shape(form3.Cylinder(s.DowelRadius, s.DowelRadius, s.DowelDepth, 16))
		a.solid(a.root, "DowelHole", in.Index+1, h, radial(in), bore)
	}
	bolts := a.instances(pattern.Angular(s.Bolts, s.boltCircle(), math.Pi/4))
	for _, in := range bolts {
		boss := a.shape(form3.Cylinder(s.BossRadius, s.BossRadius, s.BossHeight, 16))
		a.solid(a.root, "BoltBoss", in.Index+1, boss, posed(r3.Add(in.Position, r3.Vec{Y: s.Thickness + s.BossHeight/2}), r3.Vec{}), castSteel)
		hole := a.shape(form3.Cylinder(s.HoleRadius, s.HoleRadius, s.Thickness+s.BossHeight, 16))
		a.solid(a.root, "BoltHole", in.Index+1, hole, posed(r3.Add(in.Position, r3.Vec{Y: (s.Thickness + s.BossHeight) / 2}), r3.Vec{}), bore)
	}
}

// GuideSpec is the lathed suction guide funnel.
type GuideSpec struct {
	Units
	Inner    float64 `toml:"inner_radius"`
	Outer    float64 `toml:"outer_radius"`
	Length   float64 `toml:"length"`
	Segments int     `toml:"segments"`
}

func (GuideSpec) Kind() Kind { return SuctionGuide }

func (s GuideSpec) Validate() error {
	c := &checker{part: SuctionGuide.String()}
	s.Units.check(c)
	c.positive("inner_radius", s.Inner)
	c.less("inner_radius", s.Inner, s.Outer)
	c.positive("length", s.Length)
	c.count("segments", s.Segments, 3)
	return c.err()
}

func (s GuideSpec) assemble(a *assembler) {
	g := a.shape(form3.Lathe([]r2.Vec{
		{X: s.Inner, Y: 0}, {X: s.Outer, Y: 0}, {X: s.Outer, Y: s.Length}, {X: s.Inner, Y: s.Length},
	}, s.Segments))
	a.solid(a.root, "Body", 0, g, ypos(0), castSteel)
}

// HousingSpec is a plain cylindrical part: bearing housings and the
// coupling hub.
type HousingSpec struct {
	Units
	Part     Kind    `toml:"-"`
	Radius   float64 `toml:"radius"`
	Length   float64 `toml:"length"`
	Segments int     `toml:"segments"`
}

func (s HousingSpec) Kind() Kind { return s.Part }

func (s HousingSpec) Validate() error {
	c := &checker{part: s.Part.String()}
	switch s.Part {
	case BearingHousingDE, BearingHousingNDE, Coupling:
	default:
		c.fail("part", s.Part)
	}
	s.Units.check(c)
	c.positive("radius", s.Radius)
	c.positive("length", s.Length)
	c.count("segments", s.Segments, 3)
	return c.err()
}

func (s HousingSpec) assemble(a *assembler) {
	look := castSteel
	if s.Part == Coupling {
		look = stainless
	}
	b := a.shape(form3.Cylinder(s.Radius, s.Radius, s.Length, s.Segments))
	a.solid(a.root, "Body", 0, b, ypos(0), look)
}

// CoverSpec is the discharge cover with its nozzle and flange.
type CoverSpec struct {
	Units
	OD              float64 `toml:"outer_diameter"`
	Thickness       float64 `toml:"thickness"`
	BoltCircle      float64 `toml:"bolt_circle_diameter"`
	Bolts           int     `toml:"bolts"`
	BoltHole        float64 `toml:"bolt_hole_diameter"`
	ShaftDiameter   float64 `toml:"shaft_diameter"`
	NozzleOD        float64 `toml:"nozzle_diameter"`
	NozzleLength    float64 `toml:"nozzle_length"`
	FlangeOD        float64 `toml:"flange_diameter"`
	FlangeThickness float64 `toml:"flange_thickness"`
	FlangeBolts     int     `toml:"flange_bolts"`
	FlangeHole      float64 `toml:"flange_hole_diameter"`
	FlangePCD       float64 `toml:"flange_bolt_circle_diameter"`
	Ribs            int     `toml:"ribs"`
	RibThickness    float64 `toml:"rib_thickness"`
}

func (CoverSpec) Kind() Kind { return DischargeCover }

func (s CoverSpec) Validate() error {
	c := &checker{part: DischargeCover.String()}
	s.Units.check(c)
	c.positive("outer_diameter", s.OD)
	c.positive("thickness", s.Thickness)
	c.count("bolts", s.Bolts, 1)
	c.positive("bolt_hole_diameter", s.BoltHole)
	c.require("bolt_hole_diameter", s.BoltHole, s.BoltHole < s.BoltCircle)
	c.less("bolt_circle_diameter", s.BoltCircle, s.OD)
	c.positive("shaft_diameter", s.ShaftDiameter)
	c.less("shaft_diameter", s.ShaftDiameter, s.OD/2)
	c.positive("nozzle_diameter", s.NozzleOD)
	c.positive("nozzle_length", s.NozzleLength)
	c.less("nozzle_diameter", s.NozzleOD, s.FlangeOD)
	c.positive("flange_thickness", s.FlangeThickness)
	c.count("flange_bolts", s.FlangeBolts, 1)
	c.positive("flange_hole_diameter", s.FlangeHole)
	c.require("flange_hole_diameter", s.FlangeHole, s.FlangeHole < s.FlangePCD)
	c.less("flange_bolt_circle_diameter", s.FlangePCD, s.FlangeOD)
	c.count("ribs", s.Ribs, 1)
	c.positive("rib_thickness", s.RibThickness)
	return c.err()
}

func (s CoverSpec) assemble(a *assembler) {
	r, t := s.OD/2, s.Thickness
	body := a.group(a.root, "Body", ypos(0))
	disc := a.shape(form3.Cylinder(r, r, t, 64))
	a.solid(body, "Disc", 0, disc, ypos(0), castSteel)
	shaft := a.shape(form3.Cylinder(s.ShaftDiameter/2, s.ShaftDiameter/2, t+1, 32))
	a.solid(body, "ShaftBore", 0, shaft, ypos(0), bore)
	chamber := a.shape(form3.Torus(s.OD/4, s.OD/8, 16, 32, math.Pi))
	a.solid(body, "FlowChamber", 0, chamber, flat(0), bore)

	holes := a.group(a.root, "BoltHoles", ypos(0))
	for _, in := range a.instances(pattern.Angular(s.Bolts, s.BoltCircle/2, 0)) {
		h := a.shape(form3.Cylinder(s.BoltHole/2, s.BoltHole/2, t+1, 16))
		a.solid(holes, "Hole", in.Index+1, h, posed(in.Position, r3.Vec{}), bore)
	}

	nozzle := a.group(a.root, "DischargeNozzle", along(r3.Vec{X: r + s.NozzleLength/2}))
	pipe := a.shape(form3.Cylinder(s.NozzleOD/2, s.NozzleOD/2, s.NozzleLength, 32))
	a.solid(nozzle, "Pipe", 0, pipe, ypos(0), castSteel)

	flange := a.group(a.root, "Flange", along(r3.Vec{X: r + s.NozzleLength + s.FlangeThickness/2}))
	disc2 := a.shape(form3.Cylinder(s.FlangeOD/2, s.FlangeOD/2, s.FlangeThickness, 32))
	a.solid(flange, "Flange_Disc", 0, disc2, ypos(0), castSteel)
	for _, in := range a.instances(pattern.Angular(s.FlangeBolts, s.FlangePCD/2, 0)) {
		h := a.shape(form3.Cylinder(s.FlangeHole/2, s.FlangeHole/2, s.FlangeThickness+1, 16))
		a.solid(flange, "Flange_Hole", in.Index+1, h, posed(in.Position, r3.Vec{}), bore)
	}

	groove := a.group(a.root, "SealingGroove", ypos(0))
	ring := a.shape(form3.Ring(r-s.OD/20, r, 64))
	a.solid(groove, "Ring", 0, ring, flat(-t/2-2), castSteel)

	ribs := a.group(a.root, "ReinforcementRibs", ypos(0))
	for _, in := range a.instances(pattern.Angular(s.Ribs, s.OD/4, 0)) {
		rib := a.shape(form3.Box(r, t, s.RibThickness))
		a.solid(ribs, "Rib", in.Index+1, rib, at(in), castSteel)
	}
}

// TieBoltSpec is one casing tie bolt with a hex nut at each end.
type TieBoltSpec struct {
	Units
	RodRadius float64 `toml:"rod_radius"`
	Length    float64 `toml:"length"`
	NutRadius float64 `toml:"nut_radius"`
	NutHeight float64 `toml:"nut_height"`
	// Count and Circle place the bolts around the casing in the assembly.
	Count  int     `toml:"count"`
	Circle float64 `toml:"circle_radius"`
}

func (TieBoltSpec) Kind() Kind { return TieBolt }

func (s TieBoltSpec) Validate() error {
	c := &checker{part: TieBolt.String()}
	s.Units.check(c)
	c.positive("rod_radius", s.RodRadius)
	c.less("rod_radius", s.RodRadius, s.NutRadius)
	c.positive("length", s.Length)
	c.positive("nut_height", s.NutHeight)
	c.require("nut_height", s.NutHeight, 2*s.NutHeight < s.Length)
	c.count("count", s.Count, 1)
	c.less("nut_radius", s.NutRadius, s.Circle)
	return c.err()
}

func (s TieBoltSpec) assemble(a *assembler) {
	rod := a.shape(form3.Cylinder(s.RodRadius, s.RodRadius, s.Length, 16))
	a.solid(a.root, "Rod", 0, rod, ypos(0), fastener)
	y := s.Length/2 - s.NutHeight/2
	for i, ny := range []float64{-y, y} {
		nut := a.shape(form3.Cylinder(s.NutRadius, s.NutRadius, s.NutHeight, 6))
		a.solid(a.root, "Nut", i+1, nut, ypos(ny), nutSteel)
	}
}
