package assembly

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/pumpsdf/internal/d3"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStagePositions(t *testing.T) {
	l := Layout{StageSpacing: 4, Stages: 8, ExplodeStep: 2}
	nominal := l.StagePositions(false)
	exploded := l.StagePositions(true)
	for i := range nominal {
		want := 2 + 4*float64(i)
		if nominal[i] != want {
			t.Errorf("stage %d at %g, want %g", i, nominal[i], want)
		}
		if d := exploded[i] - nominal[i]; d != 2*float64(i) {
			t.Errorf("stage %d shifted %g, want %g", i, d, 2*float64(i))
		}
	}
	if exploded[0] != nominal[0] || exploded[7]-nominal[7] != 14 {
		t.Errorf("exploded ends %g %g", exploded[0], exploded[7])
	}
}

func TestStageOrderingMonotonic(t *testing.T) {
	for _, l := range []Layout{
		DefaultLayout(),
		{StageSpacing: 0.5, Stages: 12, ExplodeStep: 0},
		{StageSpacing: 10, Stages: 3, ExplodeStep: 7.5},
	} {
		for _, exploded := range []bool{false, true} {
			pos := l.StagePositions(exploded)
			for i := 1; i < len(pos); i++ {
				if !(pos[i-1] < pos[i]) {
					t.Errorf("%+v exploded=%v: stage %d at %g not after %g", l, exploded, i, pos[i], pos[i-1])
				}
			}
			if s, d := l.Suction(exploded), l.Discharge(exploded); !(s < pos[0] && pos[len(pos)-1] < d) {
				t.Errorf("%+v exploded=%v: ends %g %g do not enclose stages", l, exploded, s, d)
			}
		}
	}
}

func TestFullAssembly(t *testing.T) {
	node, err := Full(part.DefaultTable(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[part.Kind]int)
	for _, p := range node.Placements {
		counts[p.Kind]++
	}
	for k, want := range map[part.Kind]int{
		part.Diffuser:              8,
		part.StageCasing:           8,
		part.Impeller1stStage:      1,
		part.ImpellerNStage:        7,
		part.ShaftSleeveSeal:       2,
		part.ShaftSleeveInterstage: 7,
		part.WearRingImpeller:      16,
		part.WearRingCasing:        8,
		part.ImpellerKey:           8,
		part.TieBolt:               12,
		part.PumpShaft:             1,
		part.CouplingGuard:         1,
	} {
		if counts[k] != want {
			t.Errorf("%v: %d placed, want %d", k, counts[k], want)
		}
	}
	for _, test := range []struct {
		name  string
		axial float64
	}{
		{"Diffuser_1", 2},
		{"Diffuser_8", 30},
		{"Impeller_1stStage", 2},
		{"Impeller_NStage_7", 30},
		{"SuctionGuide", 0},
		{"DischargeCover", 32},
		{"ShaftSleeve_Seal_1", -2},
		{"ShaftSleeve_Interstage_1", 4},
		{"WearRing_Impeller_1", 1.75},
		{"WearRing_Impeller_2", 2.25},
		{"CouplingGuard", 42},
	} {
		pos, ok := node.Lookup(test.name)
		if !ok {
			t.Errorf("%s not placed", test.name)
			continue
		}
		if math.Abs(pos.Y-test.axial) > 1e-12 {
			t.Errorf("%s at %g, want %g", test.name, pos.Y, test.axial)
		}
	}
	for i, p := range node.Placements {
		if p.Kind != part.TieBolt {
			continue
		}
		pos := node.Position(i)
		if r := math.Hypot(pos.X, pos.Z); math.Abs(r-9.5) > 1e-9 {
			t.Errorf("%s on radius %g", p.Name(), r)
		}
		if pos.Y != 16 {
			t.Errorf("%s at axial %g, want the midpoint", p.Name(), pos.Y)
		}
	}
}

func TestExplodeReversible(t *testing.T) {
	nominal, err := Full(part.DefaultTable(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	before := make([]r3.Vec, len(nominal.Placements))
	for i := range before {
		before[i] = nominal.Position(i)
	}
	exploded := nominal.Explode(true)
	moved := 0
	for i := range before {
		if exploded.Position(i) != before[i] {
			moved++
		}
		if exploded.Parts[i] != nominal.Parts[i] {
			t.Fatal("exploding rebuilt a part")
		}
	}
	if moved == 0 {
		t.Fatal("exploding moved nothing")
	}
	back := exploded.Explode(false)
	for i := range before {
		if got := back.Position(i); got != before[i] {
			t.Errorf("%s drifted from %v to %v", back.Placements[i].Name(), before[i], got)
		}
	}
	if nominal.Exploded {
		t.Error("Explode modified its receiver")
	}
}

func TestTreeOrientsAxis(t *testing.T) {
	node, err := Full(part.DefaultTable(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	tree := node.Tree()
	world, ok := tree.WorldPose("DischargeCover_Placement")
	if !ok {
		t.Fatal("no discharge placement")
	}
	if got := world.Transform(r3.Vec{}); !d3.EqualWithin(got, r3.Vec{X: 32}, 1e-9) {
		t.Errorf("discharge cover at %v, want on +X", got)
	}
	if tree.Find("DischargeCover") == nil {
		t.Error("part not nested under its placement")
	}
}

func TestCartridgeOrder(t *testing.T) {
	node, err := Cartridge(part.DefaultTable(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Placements) != 67 {
		t.Fatalf("%d parts in the cartridge, want 67", len(node.Placements))
	}
	want := []string{"PumpShaft", "ImpellerKey_1", "ShaftSleeve_Seal_1", "Impeller_1stStage", "WearRing_Impeller_1", "WearRing_Casing_1", "SuctionGuide", "Diffuser_1", "StageCasing_1", "ImpellerKey_2"}
	for i, name := range want {
		if got := node.Placements[i].Name(); got != name {
			t.Errorf("position %d holds %s, want %s", i, got, name)
		}
	}
	if got := node.Placements[66].Name(); got != "ShaftSleeve_Seal_2" {
		t.Errorf("last part %s", got)
	}
	exploded := node.Explode(true)
	prev := math.Inf(-1)
	for i := range exploded.Placements {
		y := exploded.Position(i).Y
		if y < prev {
			t.Fatalf("exploded cartridge out of order at %d", i)
		}
		prev = y
	}
}

func TestPartFailureIsLocal(t *testing.T) {
	table := part.DefaultTable()
	table.Guard.HoleRadius = -1
	node, err := Full(table, Config{})
	if !errors.Is(err, part.ErrPrecondition) {
		t.Fatalf("want precondition error, got %v", err)
	}
	if node == nil {
		t.Fatal("no assembly returned")
	}
	if _, ok := node.Lookup("CouplingGuard"); ok {
		t.Error("failed part placed")
	}
	if _, ok := node.Lookup("Diffuser_8"); !ok {
		t.Error("sibling parts lost")
	}
}

func TestSelect(t *testing.T) {
	for _, test := range []struct {
		key  string
		root string
	}{
		{"assembly", FullName},
		{"cartridge", CartridgeName},
		{"guard", "CouplingGuard_View"},
		{"StageCasing", "StageCasing_View"},
		{"nuts", "GlandStudsAndNuts_View"},
	} {
		sel, err := ParseSelection(test.key)
		if err != nil {
			t.Fatal(err)
		}
		node, err := Select(part.DefaultTable(), Config{Selected: sel, Wireframe: true})
		if err != nil {
			t.Fatalf("%s: %v", test.key, err)
		}
		if node.Name != test.root {
			t.Errorf("%s: root %q, want %q", test.key, node.Name, test.root)
		}
		node.Parts[0].Walk(func(n *scene.PartNode, _ d3.Transform) bool {
			for _, s := range n.Solids {
				if !s.Appearance.Wireframe {
					t.Errorf("%s: %s not wireframe", test.key, s.Name)
				}
			}
			return true
		})
	}
	if _, err := ParseSelection("spaceship"); err == nil {
		t.Error("unknown selection accepted")
	}
}
