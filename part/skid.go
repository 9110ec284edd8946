package part

import (
	"math"

	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// BaseplateSpec is the fabricated skid carrying pump and motor. Its long
// axis is X and its top face is +Y.
type BaseplateSpec struct {
	Units
	BeamLength  float64 `toml:"beam_length"`
	BeamHeight  float64 `toml:"beam_height"`
	BeamWidth   float64 `toml:"beam_width"`
	BeamSpacing float64 `toml:"beam_spacing"`
	CrossLength float64 `toml:"cross_length"`
	CrossSize   float64 `toml:"cross_size"`
	PadLength   float64 `toml:"pad_length"`
	PadHeight   float64 `toml:"pad_height"`
	PadWidth    float64 `toml:"pad_width"`
	PadOffset   float64 `toml:"pad_offset"`
	HoleRadius  float64 `toml:"hole_radius"`
	HoleOffset  float64 `toml:"hole_offset"`
	LugRadius   float64 `toml:"lug_radius"`
	LugHeight   float64 `toml:"lug_height"`
}

func (BaseplateSpec) Kind() Kind { return BaseplateSkid }

func (s BaseplateSpec) Validate() error {
	c := &checker{part: BaseplateSkid.String()}
	s.Units.check(c)
	c.positive("beam_length", s.BeamLength)
	c.positive("beam_height", s.BeamHeight)
	c.positive("beam_width", s.BeamWidth)
	c.less("beam_width", s.BeamWidth, s.BeamSpacing)
	c.positive("cross_length", s.CrossLength)
	c.positive("cross_size", s.CrossSize)
	c.positive("pad_length", s.PadLength)
	c.positive("pad_height", s.PadHeight)
	c.positive("pad_width", s.PadWidth)
	c.require("pad_offset", s.PadOffset, s.PadOffset+s.PadLength/2 <= s.BeamLength/2)
	c.positive("hole_radius", s.HoleRadius)
	c.require("hole_offset", s.HoleOffset, s.HoleOffset+s.HoleRadius < math.Min(s.PadLength, s.PadWidth)/2)
	c.positive("lug_radius", s.LugRadius)
	c.positive("lug_height", s.LugHeight)
	return c.err()
}

func (s BaseplateSpec) assemble(a *assembler) {
	z := s.BeamSpacing / 2
	beamY := -s.CrossSize
	frame := a.group(a.root, "Frame", scene.Pose{})
	for i, bz := range []float64{z, -z} {
		beam := a.shape(form3.Box(s.BeamLength, s.BeamHeight, s.BeamWidth))
		a.solid(frame, "Beam", i+1, beam, pos(0, beamY, bz), frameSteel)
		web := a.shape(form3.Box(s.BeamLength, s.BeamHeight/3, s.BeamWidth/2))
		a.solid(frame, "Web", i+1, web, pos(0, beamY, bz), frameSteel)
	}

	cross := a.group(a.root, "CrossMembers", scene.Pose{})
	span := s.BeamLength/2 - 1.5*s.CrossSize
	for i, x := range []float64{span, -span, 0} {
		m := a.shape(form3.Box(s.CrossSize, s.CrossSize, s.CrossLength))
		a.solid(cross, "Member", i+1, m, pos(x, -s.CrossSize/2, 0), frameSteel)
	}

	pads := a.group(a.root, "MountingPads", scene.Pose{})
	holes := a.group(a.root, "BoltHoles", scene.Pose{})
	for i, px := range []float64{s.PadOffset, -s.PadOffset} {
		pad := a.shape(form3.Box(s.PadLength, s.PadHeight, s.PadWidth))
		a.solid(pads, "Pad", i+1, pad, pos(px, 0, 0), padSteel)
		ring := a.instances(pattern.Angular(4, s.HoleOffset, 0))
		for _, in := range pattern.Translate(ring, r3.Vec{X: px, Y: s.PadHeight / 2}) {
			h := a.shape(form3.Cylinder(s.HoleRadius, s.HoleRadius, s.PadHeight, 8))
			a.solid(holes, "Hole", 4*i+in.Index+1, h, posed(in.Position, r3.Vec{}), bore)
		}
	}

	lugs := a.group(a.root, "LiftingLugs", scene.Pose{})
	lx := s.BeamLength/2 - s.CrossSize/2
	lz := s.CrossLength / 2
	for i, p := range [][2]float64{{lx, lz}, {lx, -lz}, {-lx, lz}, {-lx, -lz}} {
		lug := a.shape(form3.Cylinder(s.LugRadius, s.LugRadius, s.LugHeight, 8))
		a.solid(lugs, "Lug", i+1, lug, pos(p[0], s.LugHeight/2, p[1]), frameSteel)
	}
}

// LubeSkidSpec is the lube oil console: frame, tank and a pump whose
// impeller turns continuously.
type LubeSkidSpec struct {
	Units
	FrameLength float64 `toml:"frame_length"`
	FrameWidth  float64 `toml:"frame_width"`
	BeamSize    float64 `toml:"beam_size"`
	LegHeight   float64 `toml:"leg_height"`
	TankRadius  float64 `toml:"tank_radius"`
	TankHeight  float64 `toml:"tank_height"`
	PumpRadius  float64 `toml:"pump_radius"`
	PumpHeight  float64 `toml:"pump_height"`
	PumpOffset  float64 `toml:"pump_offset"`
	Blades      int     `toml:"blades"`
	BladeSpan   float64 `toml:"blade_span"`
	PipeRadius  float64 `toml:"pipe_radius"`
	SpinRate    float64 `toml:"spin_rate"`
}

func (LubeSkidSpec) Kind() Kind { return LubeOilSkid }

func (s LubeSkidSpec) Validate() error {
	c := &checker{part: LubeOilSkid.String()}
	s.Units.check(c)
	c.positive("frame_length", s.FrameLength)
	c.positive("frame_width", s.FrameWidth)
	c.positive("beam_size", s.BeamSize)
	c.less("beam_size", s.BeamSize, s.FrameWidth/4)
	c.positive("leg_height", s.LegHeight)
	c.positive("tank_radius", s.TankRadius)
	c.positive("tank_height", s.TankHeight)
	c.positive("pump_radius", s.PumpRadius)
	c.positive("pump_height", s.PumpHeight)
	c.positive("pump_offset", s.PumpOffset)
	c.count("blades", s.Blades, 1)
	c.positive("blade_span", s.BladeSpan)
	c.less("blade_span", s.BladeSpan, 2*s.PumpRadius)
	c.positive("pipe_radius", s.PipeRadius)
	return c.err()
}

func (s LubeSkidSpec) assemble(a *assembler) {
	b := s.BeamSize
	deck := -s.LegHeight / 2
	frame := a.group(a.root, "BaseFrame", scene.Pose{})
	for i, z := range []float64{0, s.FrameWidth / 2, -s.FrameWidth / 2} {
		beam := a.shape(form3.Box(s.FrameLength, b, b))
		a.solid(frame, "Beam", i+1, beam, pos(0, deck, z), skidFrame)
	}
	cx := s.FrameLength/2 - b
	for i, x := range []float64{cx, -cx} {
		cb := a.shape(form3.Box(b, b, s.FrameWidth))
		a.solid(frame, "CrossBeam", i+1, cb, pos(x, deck, 0), skidFrame)
	}
	lz := s.FrameWidth/2 - b
	for i, p := range [][2]float64{{cx, lz}, {cx, -lz}, {-cx, lz}, {-cx, -lz}} {
		leg := a.shape(form3.Cylinder(b/2, b/2, s.LegHeight, 8))
		a.solid(frame, "Leg", i+1, leg, pos(p[0], deck-s.LegHeight/2, p[1]), skidFrame)
	}

	tankY := s.TankHeight / 4
	tank := a.group(a.root, "OilTank", ypos(tankY))
	shell := a.shape(form3.Cylinder(s.TankRadius, s.TankRadius, s.TankHeight, 16))
	a.solid(tank, "Shell", 0, shell, ypos(0), silver)
	for i, y := range []float64{s.TankHeight/2 + b/2, -s.TankHeight/2 - b/2} {
		end := a.shape(form3.Cylinder(s.TankRadius+b/2, s.TankRadius+b/2, b, 16))
		a.solid(tank, "Head", i+1, end, ypos(y), silver)
	}

	pump := a.group(a.root, "PumpMain", pos(s.PumpOffset, 0, 0))
	casing := a.shape(form3.Cylinder(s.PumpRadius, s.PumpRadius, s.PumpHeight, 16))
	a.solid(pump, "Casing", 0, casing, ypos(0), skidFrame)
	fy := s.PumpHeight/2 + b/2
	for i, y := range []float64{-fy, fy} {
		f := a.shape(form3.Cylinder(s.PumpRadius+b/2, s.PumpRadius+b/2, b, 16))
		a.solid(pump, "Flange", i+1, f, ypos(y), skidFrame)
	}
	shaft := a.shape(form3.Cylinder(b/4, b/4, s.PumpHeight+b, 8))
	a.solid(pump, "Shaft", 0, shaft, ypos(0), skidFrame)
	impeller := a.group(pump, "Impeller", scene.Pose{})
	impeller.Spin = scene.Spin{Axis: r3.Vec{Y: 1}, Rate: s.SpinRate}
	hub := a.shape(form3.Cylinder(s.BladeSpan*3/8, s.BladeSpan*3/8, b/2, 8))
	a.solid(impeller, "Hub", 0, hub, ypos(0), skidFrame)
	for _, in := range a.instances(pattern.Angular(s.Blades, s.BladeSpan*5/8, 0)) {
		blade := a.shape(form3.Box(s.BladeSpan, b/4, b/10))
		a.solid(impeller, "Blade", in.Index+1, blade, at(in), skidFrame)
	}

	pipes := a.group(a.root, "Pipes", scene.Pose{})
	py := 1.5 * b
	suction := a.shape(form3.Cylinder(s.PipeRadius, s.PipeRadius, s.PumpOffset-s.TankRadius, 8))
	a.solid(pipes, "Suction", 0, suction, along(r3.Vec{X: (s.PumpOffset + s.TankRadius) / 2, Y: py}), pipeSteel)
	discharge := a.shape(form3.Cylinder(s.PipeRadius, s.PipeRadius, s.FrameLength/4, 8))
	a.solid(pipes, "Discharge", 0, discharge, along(r3.Vec{X: s.PumpOffset + s.PumpRadius + s.FrameLength/8, Y: py}), pipeSteel)
	ret := a.shape(form3.Cylinder(0.8*s.PipeRadius, 0.8*s.PipeRadius, 1.2*s.FrameLength/4, 8))
	a.solid(pipes, "Return", 0, ret, posed(r3.Vec{X: s.PumpOffset, Y: 4 * b, Z: 2.5 * b}, r3.Vec{X: math.Pi / 4}), pipeSteel)

	motor := a.group(a.root, "MotorMount", pos(-s.PumpOffset, b, 0))
	mm := a.shape(form3.Box(3*b, 2*b, 3*b))
	a.solid(motor, "Block", 0, mm, scene.Pose{}, skidFrame)

	valves := a.group(a.root, "Valves", scene.Pose{})
	for i, x := range []float64{(s.PumpOffset + s.TankRadius) / 2, s.PumpOffset + s.PumpRadius + s.FrameLength/8} {
		v := a.shape(form3.Cylinder(1.2*s.PipeRadius, 1.2*s.PipeRadius, 1.5*b, 8))
		a.solid(valves, "Valve", i+1, v, pos(x, 3*b, 1.5*b), pipeSteel)
	}
}

// SectionSpec is the simplified feed pump section: casing, flanges,
// shaft, spinning impeller and the inlet and outlet pipes.
type SectionSpec struct {
	Units
	CasingRadius    float64 `toml:"casing_radius"`
	CasingHeight    float64 `toml:"casing_height"`
	FlangeRadius    float64 `toml:"flange_radius"`
	FlangeThickness float64 `toml:"flange_thickness"`
	ShaftRadius     float64 `toml:"shaft_radius"`
	ShaftLength     float64 `toml:"shaft_length"`
	HubRadius       float64 `toml:"hub_radius"`
	Blades          int     `toml:"blades"`
	BladePitch      float64 `toml:"blade_pitch"`
	BladeSpan       float64 `toml:"blade_span"`
	PipeRadius      float64 `toml:"pipe_radius"`
	PipeLength      float64 `toml:"pipe_length"`
	SpinRate        float64 `toml:"spin_rate"`
}

func (SectionSpec) Kind() Kind { return FeedPumpSection }

func (s SectionSpec) Validate() error {
	c := &checker{part: FeedPumpSection.String()}
	s.Units.check(c)
	c.positive("casing_radius", s.CasingRadius)
	c.positive("casing_height", s.CasingHeight)
	c.less("casing_radius", s.CasingRadius, s.FlangeRadius)
	c.positive("flange_thickness", s.FlangeThickness)
	c.positive("shaft_radius", s.ShaftRadius)
	c.less("shaft_radius", s.ShaftRadius, s.HubRadius)
	c.positive("shaft_length", s.ShaftLength)
	c.count("blades", s.Blades, 1)
	c.positive("blade_pitch", s.BladePitch)
	c.positive("blade_span", s.BladeSpan)
	c.positive("pipe_radius", s.PipeRadius)
	c.positive("pipe_length", s.PipeLength)
	return c.err()
}

func (s SectionSpec) assemble(a *assembler) {
	casing := a.shape(form3.Cylinder(s.CasingRadius, s.CasingRadius, s.CasingHeight, 32))
	a.solid(a.root, "Casing", 0, casing, ypos(0), feedSteel)
	fy := s.CasingHeight/2 + s.FlangeThickness/2
	for i, y := range []float64{-fy, fy} {
		f := a.shape(form3.Cylinder(s.FlangeRadius, s.FlangeRadius, s.FlangeThickness, 32))
		a.solid(a.root, "Flange", i+1, f, ypos(y), feedSteel)
	}
	shaft := a.shape(form3.Cylinder(s.ShaftRadius, s.ShaftRadius, s.ShaftLength, 16))
	a.solid(a.root, "Shaft", 0, shaft, ypos(0), feedSteel)

	impeller := a.group(a.root, "Impeller", scene.Pose{})
	impeller.Spin = scene.Spin{Axis: r3.Vec{Y: 1}, Rate: s.SpinRate}
	hub := a.shape(form3.Cylinder(s.HubRadius, s.HubRadius, s.HubRadius/2, 16))
	a.solid(impeller, "Hub", 0, hub, ypos(0), feedSteel)
	for _, in := range a.instances(pattern.Angular(s.Blades, s.BladePitch, 0)) {
		blade := a.shape(form3.Box(s.BladeSpan, s.HubRadius/2, s.HubRadius/4))
		a.solid(impeller, "Blade", in.Index+1, blade, at(in), feedSteel)
	}

	x := s.CasingRadius + s.PipeLength/2
	for i, px := range []float64{-x, x} {
		p := a.shape(form3.Cylinder(s.PipeRadius, s.PipeRadius, s.PipeLength, 16))
		name := "Inlet"
		if i == 1 {
			name = "Outlet"
		}
		a.solid(a.root, name, 0, p, along(r3.Vec{X: px}), feedSteel)
	}
}
