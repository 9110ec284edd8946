package scene

import (
	"math"
	"testing"

	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func box(t *testing.T, name string, pose Pose, look Appearance) Solid {
	t.Helper()
	p, err := form3.Box(2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	return Solid{Name: name, Primitive: p, Pose: pose, Appearance: look}
}

func TestWalkComposesPoses(t *testing.T) {
	leaf := &PartNode{Name: "leaf", Pose: Pose{Position: r3.Vec{Y: 1}}}
	mid := &PartNode{Name: "mid", Pose: Uniform(r3.Vec{X: 5}, 0.5)}
	root := &PartNode{Name: "root", Pose: Pose{Rotation: r3.Vec{Z: -math.Pi / 2}}}
	root.Add(mid.Add(leaf))

	world, ok := root.WorldPose("leaf")
	if !ok {
		t.Fatal("leaf not found")
	}
	// Local +Y of the root maps to world +X.
	got := world.Transform(r3.Vec{})
	want := r3.Vec{X: 0.5, Y: -5}
	if !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("leaf origin at %v, want %v", got, want)
	}
	if root.Find("mid") != mid || root.Find("nope") != nil {
		t.Error("Find returned the wrong node")
	}
	if _, ok := root.WorldPose("nope"); ok {
		t.Error("found a missing node")
	}
}

func TestSDFSkipsTransparentAndHidden(t *testing.T) {
	root := &PartNode{Name: "root"}
	root.Solids = []Solid{
		box(t, "opaque", Pose{}, Appearance{Color: 0xff0000}),
		box(t, "bore", Pose{Position: r3.Vec{X: 10}}, Appearance{Opacity: 0.1}),
		box(t, "helper", Pose{Position: r3.Vec{X: -10}}, Appearance{Hidden: true}),
	}
	s := root.SDF()
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("opaque solid missing, d=%g", d)
	}
	for _, p := range []r3.Vec{{X: 10}, {X: -10}} {
		if d := s.Evaluate(p); d <= 0 {
			t.Errorf("non meshable solid at %v rendered, d=%g", p, d)
		}
	}
	nodes, solids := root.Count()
	if nodes != 1 || solids != 3 {
		t.Errorf("count %d nodes %d solids", nodes, solids)
	}
}

func TestSetWireframe(t *testing.T) {
	child := &PartNode{Name: "child", Solids: []Solid{box(t, "a", Pose{}, Appearance{})}}
	root := (&PartNode{Name: "root", Solids: []Solid{box(t, "b", Pose{}, Appearance{})}}).Add(child)
	root.SetWireframe(true)
	if !root.Solids[0].Appearance.Wireframe || !child.Solids[0].Appearance.Wireframe {
		t.Error("wireframe not applied to every solid")
	}
}

func TestOpacity(t *testing.T) {
	for _, test := range []struct {
		a           Appearance
		transparent bool
		opacity     float64
	}{
		{a: Appearance{}, opacity: 1},
		{a: Appearance{Opacity: 1}, opacity: 1},
		{a: Appearance{Opacity: 0.1}, transparent: true, opacity: 0.1},
	} {
		if test.a.Transparent() != test.transparent || test.a.EffectiveOpacity() != test.opacity {
			t.Errorf("%+v: transparent=%v opacity=%g", test.a, test.a.Transparent(), test.a.EffectiveOpacity())
		}
	}
}
