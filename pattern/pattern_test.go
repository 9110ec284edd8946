package pattern

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngularClosure(t *testing.T) {
	for _, test := range []struct {
		n      int
		radius float64
		start  float64
	}{
		{n: 3, radius: 40},
		{n: 6, radius: 50, start: 0.25},
		{n: 8, radius: 80},
		{n: 12, radius: 5},
		{n: 1, radius: 2},
	} {
		inst, err := Angular(test.n, test.radius, test.start)
		if err != nil {
			t.Fatal(err)
		}
		if len(inst) != test.n {
			t.Fatalf("got %d members, want %d", len(inst), test.n)
		}
		step := 2 * math.Pi / float64(test.n)
		for i, m := range inst {
			r := math.Hypot(m.Position.X, m.Position.Z)
			if math.Abs(r-test.radius) > 1e-12*test.radius {
				t.Errorf("n=%d member %d at radius %g, want %g", test.n, i, r, test.radius)
			}
			if m.Position.Y != 0 {
				t.Errorf("angular member off the XZ plane: %v", m.Position)
			}
			if i > 0 {
				if d := m.Angle - inst[i-1].Angle; math.Abs(d-step) > 1e-12 {
					t.Errorf("n=%d spacing %g, want %g", test.n, d, step)
				}
			}
		}
	}
}

func TestAngularRotationFacesOutward(t *testing.T) {
	inst, err := Angular(6, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range inst {
		tf := d3.ComposeTransform(r3.Vec{}, d3.Elem(1), d3.EulerXYZ(m.Rotation.X, m.Rotation.Y, m.Rotation.Z))
		got := tf.Transform(r3.Vec{X: 1})
		want := r3.Unit(m.Position)
		if !d3.EqualWithin(got, want, 1e-12) {
			t.Errorf("member %d: local +X maps to %v, want %v", m.Index, got, want)
		}
	}
}

func TestAxialAndGrid(t *testing.T) {
	ax, err := Axial(10, -157.5, 35)
	if err != nil {
		t.Fatal(err)
	}
	if ax[9].Position.Y != 157.5 {
		t.Errorf("last axial station %g", ax[9].Position.Y)
	}
	ang, _ := Angular(10, 95, 0)
	g := Grid(ax, ang)
	if len(g) != 100 {
		t.Fatalf("grid size %d", len(g))
	}
	for i, m := range g {
		if m.Index != i {
			t.Fatalf("grid member %d indexed %d", i, m.Index)
		}
	}
	if g[11].Position.Y != ax[1].Position.Y || g[11].Angle != ang[1].Angle {
		t.Errorf("grid member 11 misplaced: %+v", g[11])
	}
}

func TestSplitHalvesSymmetry(t *testing.T) {
	ax, _ := Axial(10, -157.5, 35)
	ang, _ := Angular(10, 95, 0)
	h1, h2, err := SplitHalves(Grid(ax, ang))
	if err != nil {
		t.Fatal(err)
	}
	if len(h1) != 50 || len(h2) != 50 {
		t.Fatalf("halves of %d and %d", len(h1), len(h2))
	}
	for _, a := range h1 {
		m := Mirror(a)
		found := false
		for _, b := range h2 {
			if d3.EqualWithin(b.Position, m.Position, 1e-9) {
				found = true
				if math.Abs(math.Hypot(b.Position.X, b.Position.Z)-math.Hypot(a.Position.X, a.Position.Z)) > 1e-9 {
					t.Error("mirror partner at a different radius")
				}
				if b.Position.Y != a.Position.Y {
					t.Error("mirror partner at a different axial position")
				}
			}
		}
		if !found {
			t.Errorf("member %d has no mirror", a.Index)
		}
	}
}

func TestSplitHalvesUnbalanced(t *testing.T) {
	ang, _ := Angular(3, 10, 0)
	if _, _, err := SplitHalves(ang); !errors.Is(err, ErrPattern) {
		t.Errorf("odd angular array cannot split into mirrored halves, got %v", err)
	}
}

func TestPatternErrors(t *testing.T) {
	if _, err := Angular(0, 1, 0); !errors.Is(err, ErrPattern) {
		t.Error("zero count should fail")
	}
	if _, err := Angular(4, 0, 0); !errors.Is(err, ErrPattern) {
		t.Error("zero radius should fail")
	}
	if _, err := Axial(-1, 0, 1); !errors.Is(err, ErrPattern) {
		t.Error("negative count should fail")
	}
}
