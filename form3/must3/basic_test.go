package must3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCylinderAlongY(t *testing.T) {
	c := Cylinder(10, 10, 40, 32)
	for _, test := range []struct {
		p    r3.Vec
		want float64
	}{
		{p: r3.Vec{}, want: -10},
		{p: r3.Vec{Y: 25}, want: 5},
		{p: r3.Vec{X: 15}, want: 5},
		{p: r3.Vec{Z: 12, Y: 19}, want: 2},
	} {
		got := c.Evaluate(test.p)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("evaluate %v: got %g, want %g", test.p, got, test.want)
		}
	}
}

func TestHexPrism(t *testing.T) {
	const r = 8.0
	nut := Cylinder(r, r, 5, 6)
	// A vertex lies on +Z, a flat faces +X.
	if d := nut.Evaluate(r3.Vec{Z: r - 0.01}); d >= 0 {
		t.Errorf("point just inside the +Z vertex is outside: %g", d)
	}
	apothem := r * math.Cos(math.Pi/6)
	if d := nut.Evaluate(r3.Vec{X: apothem + 0.01}); d <= 0 {
		t.Errorf("point past the +X flat is inside: %g", d)
	}
}

func TestLatheClosesProfile(t *testing.T) {
	l := Lathe([]r2.Vec{{X: 40, Y: 0}, {X: 60, Y: 0}, {X: 60, Y: 30}, {X: 40, Y: 30}})
	if d := l.Evaluate(r3.Vec{X: 50, Y: 15}); math.Abs(d+10) > 1e-9 {
		t.Errorf("ring wall center distance %g", d)
	}
	if d := l.Evaluate(r3.Vec{Y: 15}); d <= 0 {
		t.Error("bore should be empty")
	}
}

func TestTorusArc(t *testing.T) {
	full := Torus(50, 25, 2*math.Pi)
	half := Torus(50, 25, math.Pi)
	p := r3.Vec{Y: -50}
	if d := full.Evaluate(p); d >= 0 {
		t.Errorf("full torus should contain %v", p)
	}
	if d := half.Evaluate(p); d <= 0 {
		t.Errorf("half torus should not contain %v", p)
	}
	if d := half.Evaluate(r3.Vec{Y: 50}); math.Abs(d+25) > 1e-9 {
		t.Errorf("half torus centerline distance %g", d)
	}
}

func TestRingIsThin(t *testing.T) {
	r := Ring(29, 37, 1)
	if d := r.Evaluate(r3.Vec{X: 33}); d >= 0 {
		t.Error("ring mid radius should be inside")
	}
	if d := r.Evaluate(r3.Vec{X: 33, Z: 1}); d <= 0 {
		t.Error("ring should be thin along Z")
	}
}

func TestHelixPath(t *testing.T) {
	pts := HelixPath(33, 30, 5, 32)
	if len(pts) != 161 {
		t.Fatalf("got %d samples", len(pts))
	}
	last := pts[len(pts)-1]
	if math.Abs(last.Y-30) > 1e-12 || math.Abs(last.X-33) > 1e-9 {
		t.Errorf("helix should end above its start after whole coils: %v", last)
	}
}

func TestPanics(t *testing.T) {
	for name, fn := range map[string]func(){
		"box":      func() { Box(r3.Vec{X: 1, Y: 0, Z: 1}) },
		"cylinder": func() { Cylinder(1, 1, -1, 16) },
		"segments": func() { Cylinder(1, 1, 1, 2) },
		"torus":    func() { Torus(1, 2, math.Pi) },
		"ring":     func() { Ring(5, 4, 1) },
		"lathe":    func() { Lathe([]r2.Vec{{X: -1}, {X: 1}, {X: 1, Y: 1}}) },
		"tube":     func() { Tube([]r3.Vec{{}, {}}, 1, 0) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}
