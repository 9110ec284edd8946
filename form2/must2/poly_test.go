package must2

import (
	"math"
	"testing"

	"github.com/soypat/pumpsdf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPolygonSquare(t *testing.T) {
	sq := Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	for _, test := range []struct {
		p    r2.Vec
		want float64
	}{
		{p: r2.Vec{X: 5, Y: 5}, want: -5},
		{p: r2.Vec{X: 1, Y: 5}, want: -1},
		{p: r2.Vec{X: 15, Y: 5}, want: 5},
		{p: r2.Vec{X: 13, Y: 14}, want: 5},
	} {
		got := sq.Evaluate(test.p)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("evaluate %v: got %g, want %g", test.p, got, test.want)
		}
	}
}

func TestProfileRelAndChamfer(t *testing.T) {
	p := NewProfile()
	p.Add(0, 0)
	p.Add(10, 0).Rel()
	p.Add(0, 10).Rel().Chamfer(1)
	p.Add(0, 10)
	v, err := p.Vertices()
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 5 {
		t.Fatalf("chamfer should split one vertex into two, got %d vertices: %v", len(v), v)
	}
	if !d2.EqualWithin(v[1], r2.Vec{X: 10, Y: 0}, 1e-12) {
		t.Errorf("relative vertex resolved to %v", v[1])
	}
	if v[2].Y >= 10 || v[3].X >= 10 {
		t.Errorf("chamfer did not cut the corner: %v %v", v[2], v[3])
	}
}

func TestProfileQuadTo(t *testing.T) {
	p := NewProfile()
	p.Add(50, 15)
	p.QuadTo(r2.Vec{X: 45, Y: 20}, 50, 25, 4)
	p.Add(60, 25)
	v, err := p.Vertices()
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 6 {
		t.Fatalf("want 3 interior curve samples, got vertices %v", v)
	}
	// Midpoint of the curve lies at 1/4 a + 1/2 c + 1/4 b.
	if !d2.EqualWithin(v[2], r2.Vec{X: 47.5, Y: 20}, 1e-12) {
		t.Errorf("curve midpoint %v", v[2])
	}
}

func TestProfileArc(t *testing.T) {
	p := NewProfile()
	p.Add(0, 0)
	p.Add(10, 0).Arc(5, 8)
	p.Add(10, 10)
	v, err := p.Vertices()
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 10 {
		t.Fatalf("expected 7 interior arc points, got %d vertices", len(v))
	}
	c := r2.Vec{X: 5}
	for _, pt := range v[1:8] {
		if math.Abs(r2.Norm(r2.Sub(pt, c))-5) > 1e-9 {
			t.Errorf("arc point %v not on circle", pt)
		}
	}
}

func TestNagon(t *testing.T) {
	hex := Nagon(6, 8)
	if len(hex) != 6 {
		t.Fatal("want 6 vertices")
	}
	for i, v := range hex {
		if math.Abs(r2.Norm(v)-8) > 1e-12 {
			t.Errorf("vertex %d off circumradius: %v", i, v)
		}
	}
}

func TestPolygonRepeatedPoints(t *testing.T) {
	// Repeated points as found in stepped shaft profiles.
	p := Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 0, Y: 5}, {X: 0, Y: 0}})
	if d := p.Evaluate(r2.Vec{X: 2.5, Y: 2.5}); math.Abs(d+2.5) > 1e-12 {
		t.Errorf("center distance %g, want -2.5", d)
	}
	if d := p.Evaluate(r2.Vec{X: 5, Y: -1}); math.Abs(d-1) > 1e-12 {
		t.Errorf("outside distance %g, want 1", d)
	}
}

func TestAxialProfileSeam(t *testing.T) {
	// Solid shaft profile touching the axis.
	p := AxialProfile([]r2.Vec{{X: 0, Y: -10}, {X: 5, Y: -10}, {X: 5, Y: 10}, {X: 0, Y: 10}})
	if d := p.Evaluate(r2.Vec{X: 0, Y: 0}); math.Abs(d+5) > 1e-12 {
		t.Errorf("axis point distance %g, want -5", d)
	}
	if d := p.Evaluate(r2.Vec{X: 0, Y: 12}); math.Abs(d-2) > 1e-12 {
		t.Errorf("point above the end face %g, want 2", d)
	}
}
