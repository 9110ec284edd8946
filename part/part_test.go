package part

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/pumpsdf/internal/d3"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDefaultTableValid(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestBuildEveryKind(t *testing.T) {
	table := DefaultTable()
	for _, k := range Kinds() {
		node, err := table.Build(k, Options{})
		if err != nil {
			t.Errorf("%v: %v", k, err)
			continue
		}
		if node.Name != k.String() {
			t.Errorf("%v: root named %q", k, node.Name)
		}
		spec, _ := table.Spec(k)
		if got := node.Pose.ScaleOrUnit().X; got != spec.scale() {
			t.Errorf("%v: root scale %g, want %g", k, got, spec.scale())
		}
		names := make(map[string]bool)
		_, solids := node.Count()
		if solids == 0 {
			t.Errorf("%v: no solids", k)
		}
		node.Walk(func(n *scene.PartNode, _ d3.Transform) bool {
			if n != node && !strings.HasPrefix(n.Name, node.Name+"_") {
				t.Errorf("%v: group %q outside the part namespace", k, n.Name)
			}
			for _, s := range n.Solids {
				if !strings.HasPrefix(s.Name, node.Name+"_") {
					t.Errorf("%v: solid %q outside the part namespace", k, s.Name)
				}
				if names[s.Name] {
					t.Errorf("%v: duplicate solid name %q", k, s.Name)
				}
				names[s.Name] = true
				if s.Primitive.SDF3 == nil {
					t.Errorf("%v: solid %q has no shape", k, s.Name)
				}
			}
			return true
		})
	}
}

func TestDischargeCoverNames(t *testing.T) {
	node, err := DefaultTable().Build(DischargeCover, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]string)
	node.Walk(func(n *scene.PartNode, _ d3.Transform) bool {
		for _, s := range n.Solids {
			if prev, ok := seen[s.Name]; ok {
				t.Errorf("solid %q in both %s and %s", s.Name, prev, n.Name)
			}
			seen[s.Name] = n.Name
		}
		return true
	})
	for _, name := range []string{
		"DischargeCover_Disc",
		"DischargeCover_Flange_Disc",
		"DischargeCover_Hole_1",
		"DischargeCover_Flange_Hole_1",
	} {
		if _, ok := seen[name]; !ok {
			t.Errorf("no solid named %q", name)
		}
	}
	if seen["DischargeCover_Flange_Disc"] != "DischargeCover_Flange" {
		t.Errorf("flange disc under %q", seen["DischargeCover_Flange_Disc"])
	}
}

func TestBuildDeterministic(t *testing.T) {
	table := DefaultTable()
	points := []r3.Vec{{}, {X: 2}, {Y: 3, Z: -1}, {X: -4, Y: 1, Z: 2}, {X: 7.5, Y: -7.5, Z: 0.5}}
	for _, k := range Kinds() {
		for _, wire := range []bool{false, true} {
			opts := Options{Index: 3, Wireframe: wire}
			a, err := table.Build(k, opts)
			if err != nil {
				t.Fatal(err)
			}
			b, err := table.Build(k, opts)
			if err != nil {
				t.Fatal(err)
			}
			if a == b {
				t.Fatalf("%v: builds share the root node", k)
			}
			sa, sb := flatten(a), flatten(b)
			if len(sa) != len(sb) {
				t.Fatalf("%v: %d solids then %d", k, len(sa), len(sb))
			}
			for i := range sa {
				x, y := sa[i], sb[i]
				if x.Name != y.Name || x.Pose != y.Pose || x.Appearance != y.Appearance {
					t.Errorf("%v: solid %d differs: %+v vs %+v", k, i, x.Name, y.Name)
				}
				if x.Primitive.Type != y.Primitive.Type || !reflect.DeepEqual(x.Primitive.Params, y.Primitive.Params) {
					t.Errorf("%v: %s descriptor differs", k, x.Name)
				}
				for _, p := range points {
					if da, db := x.Primitive.Evaluate(p), y.Primitive.Evaluate(p); da != db {
						t.Errorf("%v: %s evaluates %g then %g at %v", k, x.Name, da, db, p)
					}
				}
				if wire && !x.Appearance.Wireframe {
					t.Errorf("%v: %s ignores the wireframe option", k, x.Name)
				}
			}
		}
	}
}

func flatten(n *scene.PartNode) (out []scene.Solid) {
	n.Walk(func(node *scene.PartNode, _ d3.Transform) bool {
		out = append(out, node.Solids...)
		return true
	})
	return out
}

func TestIndexedNames(t *testing.T) {
	table := DefaultTable()
	node, err := table.Build(ImpellerNStage, Options{Index: 3})
	if err != nil {
		t.Fatal(err)
	}
	if node.Name != "Impeller_NStage_3" {
		t.Fatalf("got %q", node.Name)
	}
	want := []string{"Impeller_NStage_3_Hub", "Impeller_NStage_3_Blade_1", "Impeller_NStage_3_Blade_2", "Impeller_NStage_3_Blade_3"}
	var got []string
	for _, s := range node.Solids {
		got = append(got, s.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("solid names %v, want %v", got, want)
	}

	guard, err := table.Build(CouplingGuard, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"CouplingGuard_Half_1", "CouplingGuard_Half_2"} {
		if guard.Find(name) == nil {
			t.Errorf("missing group %s", name)
		}
	}
}

func TestPreconditionErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		spec  Spec
		field string
	}{
		{
			name:  "zero hub",
			spec:  func() Spec { s := DefaultTable().Impeller; s.Stage = Impeller1stStage; s.HubRadius = 0; return s }(),
			field: "hub_radius",
		},
		{
			name:  "no blades",
			spec:  func() Spec { s := DefaultTable().Impeller; s.Stage = ImpellerNStage; s.Blades = 0; return s }(),
			field: "blades",
		},
		{
			name:  "inverted ring",
			spec:  func() Spec { s := DefaultTable().Diffuser; s.Inner, s.Outer = 60, 40; return s }(),
			field: "inner_radius",
		},
		{
			name:  "negative scale",
			spec:  func() Spec { s := DefaultTable().Guide; s.Scale = -1; return s }(),
			field: "scale",
		},
		{
			name:  "keyway outside shaft",
			spec:  func() Spec { s := DefaultTable().Shaft; s.Keyway.Center = 390; return s }(),
			field: "keyway.center",
		},
		{
			name:  "keyway through axis",
			spec:  func() Spec { s := DefaultTable().Shaft; s.Keyway.Depth = 31; return s }(),
			field: "keyway.depth",
		},
		{
			name:  "no studs",
			spec:  func() Spec { s := DefaultTable().Studs; s.Studs = 0; return s }(),
			field: "studs",
		},
		{
			name:  "housing with wrong kind",
			spec:  func() Spec { s := DefaultTable().Bearing; s.Part = Diffuser; return s }(),
			field: "part",
		},
	} {
		node, err := Build(test.spec, Options{})
		if node != nil {
			t.Errorf("%s: got a node with a bad spec", test.name)
		}
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("%s: want ErrPrecondition, got %v", test.name, err)
			continue
		}
		var perr *PreconditionError
		if !errors.As(err, &perr) {
			t.Errorf("%s: no *PreconditionError in %v", test.name, err)
			continue
		}
		if perr.Field != test.field {
			t.Errorf("%s: field %q, want %q (%v)", test.name, perr.Field, test.field, err)
		}
	}
	if _, err := Build(nil, Options{}); err == nil {
		t.Error("nil spec should fail")
	}
}

func TestKeywayContained(t *testing.T) {
	shaft := DefaultTable().Shaft
	seat, err := shaft.Keyway.Contained("shaft", shaft.Profile.Points())
	if err != nil {
		t.Fatal(err)
	}
	if seat != 30 {
		t.Fatalf("keyway cut into seat r=%g, want 30", seat)
	}
	// Every corner of the keyway box lies inside the bounding cylinder.
	k := shaft.Keyway
	rmax := 0.0
	for _, p := range shaft.Profile {
		rmax = math.Max(rmax, p[0])
	}
	for _, x := range []float64{seat - k.Depth, seat} {
		for _, z := range []float64{-k.Width / 2, k.Width / 2} {
			if r := math.Hypot(x, z); r > rmax {
				t.Errorf("corner (%g, %g) at r=%g outside r=%g", x, z, r, rmax)
			}
		}
	}

	square := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 50}, {X: 0, Y: 50}}
	for _, test := range []struct {
		k     Keyway
		field string
	}{
		{k: Keyway{Length: 10, Width: 4, Depth: 2, Center: 25}},
		{k: Keyway{Length: 60, Width: 4, Depth: 2, Center: 25}, field: "keyway.center"},
		{k: Keyway{Length: 10, Width: 4, Depth: 10, Center: 25}, field: "keyway.depth"},
		{k: Keyway{Length: 10, Width: 30, Depth: 2, Center: 25}, field: "keyway.width"},
		{k: Keyway{Length: 0, Width: 4, Depth: 2, Center: 25}, field: "keyway.length"},
	} {
		_, err := test.k.Contained("bar", square)
		if test.field == "" {
			if err != nil {
				t.Errorf("%+v: %v", test.k, err)
			}
			continue
		}
		var perr *PreconditionError
		if !errors.As(err, &perr) || perr.Field != test.field {
			t.Errorf("%+v: want %s violation, got %v", test.k, test.field, err)
		}
	}
}

// The cut shaft must agree in sign with the same cut made by an
// independent SDF kernel over the keyway region.
func TestKeywayAgainstSDFX(t *testing.T) {
	shaft := DefaultTable().Shaft
	node, err := Build(shaft, Options{})
	if err != nil {
		t.Fatal(err)
	}
	body := node.Solids[0]
	if body.Primitive.Cut == nil {
		t.Fatal("shaft body carries no cut")
	}
	k := shaft.Keyway
	cyl, err := sdf.Cylinder3D(2*k.Length+20, 30, 0)
	if err != nil {
		t.Fatal(err)
	}
	cyl = sdf.Transform3D(cyl, sdf.Translate3d(v3.Vec{Y: k.Center}).Mul(sdf.RotateX(math.Pi/2)))
	tool, err := sdf.Box3D(v3.Vec{X: 2 * k.Depth, Y: k.Length, Z: k.Width}, 0)
	if err != nil {
		t.Fatal(err)
	}
	tool = sdf.Transform3D(tool, sdf.Translate3d(v3.Vec{X: 30, Y: k.Center}))
	ref := sdf.Difference3D(cyl, tool)

	const margin = 0.25
	compared := 0
	for x := -34.0; x <= 34; x += 1.7 {
		for y := k.Center - k.Length/2 - 5; y <= k.Center+k.Length/2+5; y += 2.5 {
			for z := -8.0; z <= 8; z += 1.3 {
				want := ref.Evaluate(v3.Vec{X: x, Y: y, Z: z})
				if math.Abs(want) < margin {
					continue
				}
				got := body.Primitive.Evaluate(r3.Vec{X: x, Y: y, Z: z})
				if (got < 0) != (want < 0) {
					t.Fatalf("(%g, %g, %g): got %g, sdfx %g", x, y, z, got, want)
				}
				compared++
			}
		}
	}
	if compared == 0 {
		t.Fatal("no points compared")
	}
}

func TestGuardHalvesSymmetric(t *testing.T) {
	g := DefaultTable().Guard
	half1, half2, err := g.Perforations()
	if err != nil {
		t.Fatal(err)
	}
	if len(half1) != g.Rows*g.HolesPerHalf || len(half2) != len(half1) {
		t.Fatalf("halves %d and %d", len(half1), len(half2))
	}
	for _, a := range half1 {
		if a.Position.X < 0 {
			t.Errorf("half 1 member at %v", a.Position)
		}
		mirror := r3.Vec{X: -a.Position.X, Y: a.Position.Y, Z: -a.Position.Z}
		found := false
		for _, b := range half2 {
			if d3.EqualWithin(b.Position, mirror, 1e-9) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no partner for %v", a.Position)
		}
	}
}

func TestLoadTable(t *testing.T) {
	const doc = `
[stage_casing]
outer_diameter = 180
bolts = 6

[pump_shaft.keyway]
width = 6
`
	table, err := LoadTable(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if table.Casing.OD != 180 || table.Casing.Bolts != 6 || table.Casing.ID != 120 {
		t.Errorf("casing overrides not merged over defaults: %+v", table.Casing)
	}
	if table.Shaft.Keyway.Width != 6 || table.Shaft.Keyway.Length != 40 {
		t.Errorf("keyway %+v", table.Shaft.Keyway)
	}
	if table.ImpellerRing.Side != WearRingImpeller {
		t.Error("wear ring side lost")
	}
	if err := table.Validate(); err != nil {
		t.Error(err)
	}

	_, err = LoadTable(strings.NewReader("[stage_casing]\nouter_diamter = 1\n"))
	if err == nil || !strings.Contains(err.Error(), "outer_diamter") {
		t.Errorf("unknown key not reported: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(strings.ToLower(k.String()))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("Impeller"); err == nil {
		t.Error("ambiguous name accepted")
	}
}
