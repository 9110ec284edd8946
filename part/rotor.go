package part

import (
	"math"

	"github.com/soypat/pumpsdf/form2"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Profile is a lathe half section of (radius, axial) pairs.
type Profile [][2]float64

// Points returns the profile as vectors.
func (p Profile) Points() []r2.Vec {
	out := make([]r2.Vec, len(p))
	for i, v := range p {
		out[i] = r2.Vec{X: v[0], Y: v[1]}
	}
	return out
}

func (p Profile) check(c *checker) {
	if len(p) < 3 {
		c.fail("profile", len(p))
		return
	}
	for _, v := range p {
		if v[0] < 0 {
			c.fail("profile.radius", v[0])
			return
		}
	}
}

// ShaftSpec is the stepped pump shaft with its keyway.
type ShaftSpec struct {
	Units
	Profile  Profile `toml:"profile"`
	Segments int     `toml:"segments"`
	Keyway   Keyway  `toml:"keyway"`
}

func (ShaftSpec) Kind() Kind { return PumpShaft }

func (s ShaftSpec) Validate() error {
	c := &checker{part: PumpShaft.String()}
	s.Units.check(c)
	s.Profile.check(c)
	c.count("segments", s.Segments, 3)
	if err := c.err(); err != nil {
		return err
	}
	_, err := s.Keyway.Contained(PumpShaft.String(), s.Profile.Points())
	return err
}

func (s ShaftSpec) assemble(a *assembler) {
	pts := s.Profile.Points()
	body := a.shape(form3.Lathe(pts, s.Segments))
	if a.err == nil {
		body = a.shape(CutKeyway(a.name, body, pts, s.Keyway))
	}
	a.solid(a.root, "Body", 0, body, ypos(0), stainless)
}

// ImpellerSpec is a hub with radial blades. It serves the first stage and
// the following stages.
type ImpellerSpec struct {
	Units
	Stage          Kind    `toml:"-"`
	HubRadius      float64 `toml:"hub_radius"`
	HubLength      float64 `toml:"hub_length"`
	HubSegments    int     `toml:"hub_segments"`
	Blades         int     `toml:"blades"`
	BladePitch     float64 `toml:"blade_pitch"` // radius of the blade centers
	BladeSpan      float64 `toml:"blade_span"`  // radial
	BladeAxial     float64 `toml:"blade_axial"`
	BladeThickness float64 `toml:"blade_thickness"`
}

func (s ImpellerSpec) Kind() Kind { return s.Stage }

func (s ImpellerSpec) Validate() error {
	c := &checker{part: s.Stage.String()}
	if s.Stage != Impeller1stStage && s.Stage != ImpellerNStage {
		c.fail("stage", s.Stage)
	}
	s.Units.check(c)
	c.positive("hub_radius", s.HubRadius)
	c.positive("hub_length", s.HubLength)
	c.count("hub_segments", s.HubSegments, 3)
	c.count("blades", s.Blades, 1)
	c.positive("blade_pitch", s.BladePitch)
	c.positive("blade_span", s.BladeSpan)
	c.positive("blade_axial", s.BladeAxial)
	c.positive("blade_thickness", s.BladeThickness)
	return c.err()
}

func (s ImpellerSpec) assemble(a *assembler) {
	hub := a.shape(form3.Cylinder(s.HubRadius, s.HubRadius, s.HubLength, s.HubSegments))
	a.solid(a.root, "Hub", 0, hub, ypos(0), polished)
	for _, in := range a.instances(pattern.Angular(s.Blades, s.BladePitch, 0)) {
		blade := a.shape(form3.Box(s.BladeSpan, s.BladeAxial, s.BladeThickness))
		a.solid(a.root, "Blade", in.Index+1, blade, at(in), polished)
	}
}

// SleeveSpec is a chamfered shaft sleeve, used at the seals and between
// stages.
type SleeveSpec struct {
	Units
	Use      Kind    `toml:"-"`
	Outer    float64 `toml:"outer_radius"`
	Inner    float64 `toml:"inner_radius"`
	Length   float64 `toml:"length"`
	Chamfer  float64 `toml:"chamfer"`
	Segments int     `toml:"segments"`
}

func (s SleeveSpec) Kind() Kind { return s.Use }

func (s SleeveSpec) Validate() error {
	c := &checker{part: s.Use.String()}
	if s.Use != ShaftSleeveSeal && s.Use != ShaftSleeveInterstage {
		c.fail("use", s.Use)
	}
	s.Units.check(c)
	c.positive("inner_radius", s.Inner)
	c.less("inner_radius", s.Inner, s.Outer)
	c.positive("length", s.Length)
	c.positive("chamfer", s.Chamfer)
	c.less("chamfer", s.Chamfer, math.Min(s.Outer-s.Inner, s.Length/2))
	c.count("segments", s.Segments, 3)
	return c.err()
}

// profile returns the sleeve half section with the outer edges chamfered.
func (s SleeveSpec) profile() ([]r2.Vec, error) {
	p := form2.NewProfile()
	p.Add(s.Inner, 0)
	p.Add(s.Outer, 0).Chamfer(s.Chamfer)
	p.Add(s.Outer, s.Length).Chamfer(s.Chamfer)
	p.Add(s.Inner, s.Length)
	return p.Vertices()
}

func (s SleeveSpec) assemble(a *assembler) {
	pts, err := s.profile()
	if err != nil {
		a.shape(form3.Primitive{}, err)
	}
	body := a.shape(form3.Lathe(pts, s.Segments))
	a.solid(a.root, "Body", 0, body, ypos(0), stainless)
}

// WearRingSpec is a renewable clearance ring on the impeller or the casing.
type WearRingSpec struct {
	Units
	Side     Kind    `toml:"-"`
	Outer    float64 `toml:"outer_radius"`
	Inner    float64 `toml:"inner_radius"`
	Length   float64 `toml:"length"`
	Segments int     `toml:"segments"`
}

func (s WearRingSpec) Kind() Kind { return s.Side }

func (s WearRingSpec) Validate() error {
	c := &checker{part: s.Side.String()}
	if s.Side != WearRingImpeller && s.Side != WearRingCasing {
		c.fail("side", s.Side)
	}
	s.Units.check(c)
	c.positive("inner_radius", s.Inner)
	c.less("inner_radius", s.Inner, s.Outer)
	c.positive("length", s.Length)
	c.count("segments", s.Segments, 3)
	return c.err()
}

func (s WearRingSpec) assemble(a *assembler) {
	a.hollow(a.root, "Ring", s.Outer, s.Inner, s.Length, s.Segments, ypos(0), bronze)
}

// KeySpec is the impeller drive key. Its length runs along the shaft axis
// and its height is radial.
type KeySpec struct {
	Units
	Length float64 `toml:"length"`
	Height float64 `toml:"height"`
	Width  float64 `toml:"width"`
}

func (KeySpec) Kind() Kind { return ImpellerKey }

func (s KeySpec) Validate() error {
	c := &checker{part: ImpellerKey.String()}
	s.Units.check(c)
	c.positive("length", s.Length)
	c.positive("height", s.Height)
	c.positive("width", s.Width)
	c.require("height", s.Height, s.Height > 1.5) // room for the retaining groove
	return c.err()
}

func (s KeySpec) assemble(a *assembler) {
	body := a.shape(form3.Box(s.Height, s.Length, s.Width))
	a.solid(a.root, "Body", 0, body, ypos(0), stainless)
	for i, y := range []float64{-s.Length / 4, s.Length / 4} {
		notch := a.shape(form3.Box(0.2, s.Length/30, 0.8*s.Width))
		a.solid(a.root, "AlignmentSlot", i+1, notch, pos(s.Height/2+0.1, y, 0), bore)
	}
	groove := a.shape(form3.Box(0.5, 0.8*s.Length, 0.9*s.Width))
	a.solid(a.root, "RetainingGroove", 0, groove, pos(s.Height/2-0.5, 0, 0), bore)
	axis := a.shape(form3.Cylinder(0.1, 0.1, s.Length, 8))
	a.solid(a.root, "ReferenceAxis", 0, axis, ypos(0), helper)
}

// ThrustCollarSpec is the bored thrust disc with two drive notches.
type ThrustCollarSpec struct {
	Units
	Outer     float64 `toml:"outer_radius"`
	Bore      float64 `toml:"bore_radius"`
	Thickness float64 `toml:"thickness"`
	Notches   int     `toml:"notches"`
	NotchSize float64 `toml:"notch_size"`
}

func (ThrustCollarSpec) Kind() Kind { return ThrustCollar }

func (s ThrustCollarSpec) Validate() error {
	c := &checker{part: ThrustCollar.String()}
	s.Units.check(c)
	c.positive("bore_radius", s.Bore)
	c.less("bore_radius", s.Bore, s.Outer)
	c.positive("thickness", s.Thickness)
	c.count("notches", s.Notches, 1)
	c.positive("notch_size", s.NotchSize)
	c.less("notch_size", s.NotchSize, s.Outer-s.Bore)
	return c.err()
}

func (s ThrustCollarSpec) assemble(a *assembler) {
	a.hollow(a.root, "Disc", s.Outer, s.Bore, s.Thickness, 64, ypos(0), silver)
	notches := a.instances(pattern.Angular(s.Notches, s.Outer-s.NotchSize/2, 0))
	for _, in := range notches {
		n := a.shape(form3.Box(s.NotchSize, s.Thickness+1, s.NotchSize))
		a.solid(a.root, "Notch", in.Index+1, n, at(in), bore)
	}
}

// DrumBushSpec is the bronze balancing drum bush.
type DrumBushSpec struct {
	Units
	Outer   float64 `toml:"outer_radius"`
	Bore    float64 `toml:"bore_radius"`
	Length  float64 `toml:"length"`
	Chamfer float64 `toml:"chamfer"`
	Groove  float64 `toml:"groove_radius"`
}

func (DrumBushSpec) Kind() Kind { return BalancingDrumBush }

func (s DrumBushSpec) Validate() error {
	c := &checker{part: BalancingDrumBush.String()}
	s.Units.check(c)
	c.positive("bore_radius", s.Bore)
	c.less("bore_radius", s.Bore, s.Outer)
	c.positive("length", s.Length)
	c.positive("chamfer", s.Chamfer)
	c.less("chamfer", s.Chamfer, math.Min(s.Outer, s.Length/2))
	c.positive("groove_radius", s.Groove)
	return c.err()
}

func (s DrumBushSpec) assemble(a *assembler) {
	a.hollow(a.root, "Bush", s.Outer, s.Bore, s.Length, 64, ypos(0), drumBronze)
	y := s.Length/2 - s.Chamfer/2
	top := a.shape(form3.Cylinder(s.Outer+1, s.Outer-s.Chamfer, s.Chamfer, 64))
	a.solid(a.root, "Chamfer", 1, top, ypos(y), drumBronze)
	bottom := a.shape(form3.Cylinder(s.Outer+1, s.Outer-s.Chamfer, s.Chamfer, 64))
	a.solid(a.root, "Chamfer", 2, bottom, posed(r3.Vec{Y: -y}, r3.Vec{Z: math.Pi}), drumBronze)
	for i, gy := range []float64{s.Length / 4, -s.Length / 4} {
		g := a.shape(form3.Torus(s.Outer+1, s.Groove, 8, 32, 2*math.Pi))
		a.solid(a.root, "Groove", i+1, g, flat(gy), bronze)
	}
}

// StageBushingSpec is the interstage bushing with a locating collar.
type StageBushingSpec struct {
	Units
	Outer        float64 `toml:"outer_radius"`
	Bore         float64 `toml:"bore_radius"`
	Length       float64 `toml:"length"`
	CollarRadius float64 `toml:"collar_radius"`
	CollarLength float64 `toml:"collar_length"`
}

func (StageBushingSpec) Kind() Kind { return StageBushing }

func (s StageBushingSpec) Validate() error {
	c := &checker{part: StageBushing.String()}
	s.Units.check(c)
	c.positive("bore_radius", s.Bore)
	c.less("bore_radius", s.Bore, s.Outer)
	c.positive("length", s.Length)
	c.positive("collar_radius", s.CollarRadius)
	c.positive("collar_length", s.CollarLength)
	return c.err()
}

func (s StageBushingSpec) assemble(a *assembler) {
	a.hollow(a.root, "Bushing", s.Outer, s.Bore, s.Length, 64, ypos(0), silver)
	collar := a.shape(form3.Cylinder(s.CollarRadius, s.CollarRadius, s.CollarLength, 64))
	a.solid(a.root, "Collar", 0, collar, ypos(s.Length/2+s.CollarLength/2), silver)
}

// LockNutSpec is the shaft lock nut with its spacer.
type LockNutSpec struct {
	Units
	NutRadius    float64 `toml:"nut_radius"`
	NutHeight    float64 `toml:"nut_height"`
	ThreadRadius float64 `toml:"thread_radius"`
	SpacerRadius float64 `toml:"spacer_radius"`
	SpacerLength float64 `toml:"spacer_length"`
	Bore         float64 `toml:"bore_radius"`
}

func (LockNutSpec) Kind() Kind { return LockNutSpacer }

func (s LockNutSpec) Validate() error {
	c := &checker{part: LockNutSpacer.String()}
	s.Units.check(c)
	c.positive("nut_radius", s.NutRadius)
	c.positive("nut_height", s.NutHeight)
	c.positive("thread_radius", s.ThreadRadius)
	c.positive("spacer_length", s.SpacerLength)
	c.positive("bore_radius", s.Bore)
	c.less("bore_radius", s.Bore, s.SpacerRadius)
	return c.err()
}

func (s LockNutSpec) assemble(a *assembler) {
	nut := a.shape(form3.Cylinder(s.NutRadius, s.NutRadius, s.NutHeight, 6))
	a.solid(a.root, "Nut", 0, nut, ypos(0), nutSteel)
	thread := a.shape(form3.Cylinder(s.ThreadRadius, s.ThreadRadius, s.NutHeight, 32))
	a.solid(a.root, "Thread", 0, thread, ypos(0), threadSteel)
	y := s.NutHeight/2 + s.SpacerLength/2
	spacer := a.shape(form3.Cylinder(s.SpacerRadius, s.SpacerRadius, s.SpacerLength, 32))
	a.solid(a.root, "Spacer", 0, spacer, ypos(y), nutSteel)
	b := a.shape(form3.Cylinder(s.Bore, s.Bore, s.SpacerLength+1, 32))
	a.solid(a.root, "Spacer_Bore", 0, b, ypos(y), bore)
}
