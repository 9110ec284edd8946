// Package assembly positions built parts along the shared pump axis.
//
// Parts are built once per Config. Toggling the exploded view only
// recomputes positions, the part trees are reused untouched.
package assembly

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/pattern"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Root node names.
const (
	FullName      = "FullFeedPumpAssembly"
	CartridgeName = "Group2_InnerCartridge"
)

// Config is the state a rebuild depends on. It is passed by value on every
// rebuild and never stored by the geometry layer.
type Config struct {
	Wireframe bool
	Exploded  bool
	Selected  Selection
	// Layout of the stages. The zero value means DefaultLayout.
	Layout Layout
}

func (c Config) layout() Layout {
	if c.Layout == (Layout{}) {
		return DefaultLayout()
	}
	return c.Layout
}

// Placement locates one part on the axis.
type Placement struct {
	Kind  part.Kind
	Index int
	// Anchor and Stage give the axial reference.
	Anchor Anchor
	Stage  int
	// Offset is added to the anchor position. Its Y component is axial,
	// X and Z are radial.
	Offset r3.Vec
	// Orient is an Euler XYZ rotation applied to the part.
	Orient r3.Vec
}

// Name returns the node name of the placed part.
func (p Placement) Name() string { return part.Name(p.Kind, p.Index) }

// Node is a positioned composition of parts. Its methods never modify the
// parts it holds.
type Node struct {
	Name     string
	Layout   Layout
	Exploded bool
	// Orient rotates the local axis (+Y) into the viewer frame.
	Orient     r3.Vec
	Placements []Placement
	// Parts holds the built part of each placement.
	Parts []*scene.PartNode
}

// Position returns the position of placement i in the node's frame.
func (n *Node) Position(i int) r3.Vec {
	p := n.Placements[i]
	pos := p.Offset
	pos.Y += n.Layout.axial(p.Anchor, p.Stage, n.Exploded)
	return pos
}

// Lookup returns the position of the part named name.
func (n *Node) Lookup(name string) (r3.Vec, bool) {
	for i, p := range n.Placements {
		if p.Name() == name {
			return n.Position(i), true
		}
	}
	return r3.Vec{}, false
}

// Explode returns a copy of n laid out exploded or nominal. The parts are
// shared with n, not rebuilt.
func (n *Node) Explode(on bool) *Node {
	out := *n
	out.Exploded = on
	return &out
}

// Tree nests every part under a position only node below the root.
func (n *Node) Tree() *scene.PartNode {
	root := &scene.PartNode{Name: n.Name, Pose: scene.Pose{Rotation: n.Orient}}
	for i, p := range n.Placements {
		holder := &scene.PartNode{
			Name: p.Name() + "_Placement",
			Pose: scene.Pose{Position: n.Position(i), Rotation: p.Orient},
		}
		root.Add(holder.Add(n.Parts[i]))
	}
	return root
}

// builder builds placed parts, keeping going past failures.
type builder struct {
	table part.Table
	cfg   Config
	node  *Node
	errs  []error
}

func newBuilder(t part.Table, cfg Config, name string, orient r3.Vec) *builder {
	return &builder{
		table: t,
		cfg:   cfg,
		node:  &Node{Name: name, Layout: cfg.layout(), Exploded: cfg.Exploded, Orient: orient},
	}
}

func (b *builder) place(p Placement) {
	n, err := b.table.Build(p.Kind, part.Options{Index: p.Index, Wireframe: b.cfg.Wireframe})
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}
	b.node.Placements = append(b.node.Placements, p)
	b.node.Parts = append(b.node.Parts, n)
}

func (b *builder) at(k part.Kind, index int, a Anchor, axial float64) {
	b.place(Placement{Kind: k, Index: index, Anchor: a, Offset: r3.Vec{Y: axial}})
}

func (b *builder) stage(k part.Kind, index, stage int, axial float64) {
	b.place(Placement{Kind: k, Index: index, Anchor: Stage, Stage: stage, Offset: r3.Vec{Y: axial}})
}

// result returns the node and the joined build failures. The node holds
// every part that built.
func (b *builder) result() (*Node, error) {
	if len(b.errs) > 0 {
		return b.node, fmt.Errorf("%s: %w", b.node.Name, errors.Join(b.errs...))
	}
	return b.node, nil
}

// axisToX turns the local axis onto the viewer's +X axis.
var axisToX = r3.Vec{Z: -math.Pi / 2}

// Full builds the complete pump assembly. Parts that fail to build are
// left out and reported in the error, the rest of the node is usable.
func Full(t part.Table, cfg Config) (*Node, error) {
	l := cfg.layout()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	b := newBuilder(t, cfg, FullName, axisToX)
	// The baseplate sits below the axis; local +X points down once the
	// axis is turned onto X.
	b.place(Placement{Kind: part.BaseplateSkid, Anchor: Suction, Offset: r3.Vec{X: 5}})
	b.at(part.SuctionGuide, 0, Suction, 0)
	b.at(part.DischargeCover, 0, Discharge, 0)
	for i := 0; i < l.Stages; i++ {
		b.stage(part.Diffuser, i+1, i, 0)
		b.stage(part.StageCasing, i+1, i, 0)
	}
	b.stage(part.Impeller1stStage, 0, 0, 0)
	for i := 1; i < l.Stages; i++ {
		b.stage(part.ImpellerNStage, i, i, 0)
	}
	b.at(part.PumpShaft, 0, Origin, 0)
	b.at(part.ShaftSleeveSeal, 1, Suction, -2)
	b.at(part.ShaftSleeveSeal, 2, Discharge, 2)
	for i := 1; i < l.Stages; i++ {
		b.stage(part.ShaftSleeveInterstage, i, i-1, 2)
	}
	b.at(part.MechanicalSealCartridge, 0, Suction, -5)
	b.at(part.BearingHousingDE, 0, Suction, -10)
	b.at(part.BearingHousingNDE, 0, Discharge, 10)
	b.at(part.Coupling, 0, Discharge, 5)
	b.at(part.CouplingGuard, 0, Discharge, 10)
	for i := 0; i < 2*l.Stages; i++ {
		b.stage(part.WearRingImpeller, i+1, i/2, (float64(i%2)-0.5)*0.5)
	}
	for i := 0; i < l.Stages; i++ {
		b.stage(part.WearRingCasing, i+1, i, 0)
		b.stage(part.ImpellerKey, i+1, i, 0)
	}
	b.at(part.GlandStudsAndNuts, 0, Suction, -3)
	b.tieBolts()
	return b.result()
}

// tieBolts rings the stage casings with tie bolts at the assembly
// midpoint.
func (b *builder) tieBolts() {
	tb := b.table.TieBolt
	ring, err := pattern.Angular(tb.Count, tb.Circle*tb.Scale, 0)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("tie bolts: %w", err))
		return
	}
	for _, in := range ring {
		b.place(Placement{
			Kind:   part.TieBolt,
			Index:  in.Index + 1,
			Anchor: Midpoint,
			Offset: in.Position,
			Orient: in.Rotation,
		})
	}
}

// Cartridge builds the inner cartridge: the rotor and stage parts stacked
// in assembly order, one pitch apart. Exploding pushes each stage's parts
// out by the explode step.
func Cartridge(t part.Table, cfg Config) (*Node, error) {
	l := cfg.layout()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	b := newBuilder(t, cfg, CartridgeName, axisToX)
	seq := 0
	add := func(k part.Kind, index, stage int) {
		b.place(Placement{Kind: k, Index: index, Anchor: Stack, Stage: stage, Offset: r3.Vec{Y: float64(seq) * l.CartridgePitch}})
		seq++
	}
	add(part.PumpShaft, 0, 0)
	for s := 0; s < l.Stages; s++ {
		add(part.ImpellerKey, s+1, s)
		if s == 0 {
			add(part.ShaftSleeveSeal, 1, s)
			add(part.Impeller1stStage, 0, s)
		} else {
			add(part.ShaftSleeveInterstage, s, s)
			add(part.ImpellerNStage, s, s)
		}
		add(part.WearRingImpeller, s+1, s)
		add(part.WearRingCasing, s+1, s)
		if s == 0 {
			add(part.SuctionGuide, 0, s)
		}
		add(part.Diffuser, s+1, s)
		add(part.StageCasing, s+1, s)
	}
	last := l.Stages - 1
	for i := l.Stages; i < 2*l.Stages; i++ {
		add(part.WearRingImpeller, i+1, last)
	}
	add(part.ShaftSleeveSeal, 2, last)
	return b.result()
}

// Single builds one part at the origin in its own frame. The root is
// named <PartType>_View.
func Single(t part.Table, k part.Kind, cfg Config) (*Node, error) {
	b := newBuilder(t, cfg, k.String()+"_View", r3.Vec{})
	b.at(k, 0, Origin, 0)
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	return b.node, nil
}

// Select builds what cfg.Selected names.
func Select(t part.Table, cfg Config) (*Node, error) {
	switch cfg.Selected.View {
	case ViewAssembly:
		return Full(t, cfg)
	case ViewCartridge:
		return Cartridge(t, cfg)
	}
	if !cfg.Selected.Kind.Valid() {
		return nil, fmt.Errorf("invalid selection %+v", cfg.Selected)
	}
	return Single(t, cfg.Selected.Kind, cfg)
}
