package part

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/pumpsdf/scene"
)

// Table holds the dimension record of every part. Shared records serve
// several kinds: the impeller record both impeller stages, the sleeve and
// wear ring records both of their variants.
type Table struct {
	Shaft        ShaftSpec        `toml:"pump_shaft"`
	Impeller     ImpellerSpec     `toml:"impeller"`
	Diffuser     DiffuserSpec     `toml:"diffuser"`
	Casing       CasingSpec       `toml:"stage_casing"`
	Guide        GuideSpec        `toml:"suction_guide"`
	Sleeve       SleeveSpec       `toml:"shaft_sleeve"`
	ImpellerRing WearRingSpec     `toml:"wear_ring_impeller"`
	CasingRing   WearRingSpec     `toml:"wear_ring_casing"`
	Key          KeySpec          `toml:"impeller_key"`
	Seal         SealSpec         `toml:"mechanical_seal"`
	Studs        StudSpec         `toml:"gland_studs"`
	Bearing      HousingSpec      `toml:"bearing_housing"`
	Coupling     HousingSpec      `toml:"coupling"`
	Guard        GuardSpec        `toml:"coupling_guard"`
	Cover        CoverSpec        `toml:"discharge_cover"`
	Baseplate    BaseplateSpec    `toml:"baseplate"`
	TieBolt      TieBoltSpec      `toml:"tie_bolt"`
	Collar       ThrustCollarSpec `toml:"thrust_collar"`
	Drum         DrumBushSpec     `toml:"balancing_drum_bush"`
	Bushing      StageBushingSpec `toml:"stage_bushing"`
	LockNut      LockNutSpec      `toml:"lock_nut_spacer"`
	Pipe         PipeSpec         `toml:"balance_leakoff_pipe"`
	LubeSkid     LubeSkidSpec     `toml:"lube_oil_skid"`
	Section      SectionSpec      `toml:"feed_pump_section"`
}

// Metric scale for the parts dimensioned as full size equipment.
const metreScale = 0.001

// DefaultTable returns the dimensions of the reference pump.
func DefaultTable() Table {
	u := Units{Scale: DefaultScale}
	m := Units{Scale: metreScale}
	return Table{
		Shaft: ShaftSpec{
			Units: u,
			Profile: Profile{
				{0, -200}, {21.5, -200}, {22.5, -199}, {22.5, -120},
				{27.5, -120}, {27.5, 40}, {30, 40}, {30, 300},
				{26, 300}, {26, 330}, {40, 330}, {40, 345},
				{25, 345}, {25, 370}, {20, 370}, {20, 391}, {19, 392}, {0, 392},
			},
			Segments: 64,
			Keyway:   Keyway{Length: 40, Width: 8, Depth: 3, Center: 78},
		},
		Impeller: ImpellerSpec{
			Units: u, HubRadius: 30, HubLength: 40, HubSegments: 32,
			Blades: 3, BladePitch: 40, BladeSpan: 80, BladeAxial: 20, BladeThickness: 5,
		},
		Diffuser: DiffuserSpec{
			Units: u, Inner: 40, Outer: 60, Length: 30, Segments: 64,
			Vanes: 6, VanePitch: 50, VaneSpan: 5, VaneAxial: 30, VaneThickness: 2,
		},
		Casing: CasingSpec{
			Units: u, OD: 170, ID: 120, Thickness: 40, SeatStep: 10, Segments: 64,
			Dowels: 3, DowelRadius: 2.5, DowelDepth: 10,
			Bolts: 4, BossRadius: 7.5, BossHeight: 5, HoleRadius: 4,
		},
		Guide:        GuideSpec{Units: u, Inner: 30, Outer: 50, Length: 50, Segments: 64},
		Sleeve:       SleeveSpec{Units: u, Outer: 30, Inner: 25, Length: 70, Chamfer: 1, Segments: 64},
		ImpellerRing: WearRingSpec{Units: u, Side: WearRingImpeller, Outer: 31, Inner: 30, Length: 10, Segments: 32},
		CasingRing:   WearRingSpec{Units: u, Side: WearRingCasing, Outer: 61, Inner: 60, Length: 10, Segments: 32},
		Key:          KeySpec{Units: u, Length: 30, Height: 5, Width: 8},
		Seal: SealSpec{
			Units: u, FlangeOD: 140, FlangeThickness: 12, BoreID: 50, Depth: 80,
			BCD: 160, Bolts: 8, ShaftDiameter: 50,
			SpringRadius: 33, SpringHeight: 30, SpringCoils: 5, SpringWire: 2,
		},
		Studs: StudSpec{
			Units: u, Studs: 6, Circle: 80, StudRadius: 8, StudLength: 150,
			NutRadius: 12, NutHeight: 13,
			Asset: "nuts_and_bolts_gltf/scene.gltf", SpinRate: 0.2,
		},
		Bearing:  HousingSpec{Units: u, Part: BearingHousingDE, Radius: 20, Length: 30, Segments: 32},
		Coupling: HousingSpec{Units: u, Part: Coupling, Radius: 15, Length: 20, Segments: 32},
		Guard: GuardSpec{
			Units: u, OD: 200, ID: 180, Length: 350, Segments: 32,
			Rows: 10, HolesPerHalf: 5, HoleRadius: 5,
			FlangeWidth: 30, FlangeHeight: 100, FlangeThickness: 10,
			BoltsPerFlange: 4, BoltRadius: 2, BoltLength: 5,
		},
		Cover: CoverSpec{
			Units: m, OD: 200, Thickness: 50, BoltCircle: 180, Bolts: 8, BoltHole: 16,
			ShaftDiameter: 40, NozzleOD: 88.9, NozzleLength: 100,
			FlangeOD: 127, FlangeThickness: 20, FlangeBolts: 8, FlangeHole: 14, FlangePCD: 110,
			Ribs: 6, RibThickness: 10,
		},
		Baseplate: BaseplateSpec{
			Units: m, BeamLength: 2500, BeamHeight: 150, BeamWidth: 100, BeamSpacing: 700,
			CrossLength: 800, CrossSize: 100,
			PadLength: 600, PadHeight: 50, PadWidth: 400, PadOffset: 800,
			HoleRadius: 30, HoleOffset: 150, LugRadius: 50, LugHeight: 200,
		},
		TieBolt: TieBoltSpec{Units: u, RodRadius: 8, Length: 320, NutRadius: 13, NutHeight: 10, Count: 12, Circle: 95},
		Collar:  ThrustCollarSpec{Units: u, Outer: 75, Bore: 30, Thickness: 15, Notches: 2, NotchSize: 5},
		Drum:    DrumBushSpec{Units: u, Outer: 70, Bore: 50, Length: 80, Chamfer: 5, Groove: 2},
		Bushing: StageBushingSpec{Units: u, Outer: 36, Bore: 24.2, Length: 55, CollarRadius: 38, CollarLength: 10},
		LockNut: LockNutSpec{
			Units: u, NutRadius: 16, NutHeight: 10, ThreadRadius: 15,
			SpacerRadius: 17, SpacerLength: 60, Bore: 14,
		},
		Pipe: PipeSpec{
			Units: u, Outer: 10, Inner: 7.5, Length: 200, BendRadius: 50,
			FlangeRadius: 15, FlangeThickness: 5, Weld: 2,
		},
		LubeSkid: LubeSkidSpec{
			Units: m, FrameLength: 4000, FrameWidth: 2000, BeamSize: 200, LegHeight: 1000,
			TankRadius: 800, TankHeight: 2000, PumpRadius: 400, PumpHeight: 1000, PumpOffset: 1500,
			Blades: 4, BladeSpan: 400, PipeRadius: 100, SpinRate: 1,
		},
		Section: SectionSpec{
			Units: m, CasingRadius: 1000, CasingHeight: 2000, FlangeRadius: 1200, FlangeThickness: 200,
			ShaftRadius: 50, ShaftLength: 2500, HubRadius: 200,
			Blades: 6, BladePitch: 500, BladeSpan: 800, PipeRadius: 300, PipeLength: 1000, SpinRate: 2,
		},
	}
}

// LoadTable reads TOML overrides from r on top of the default table.
// Unknown keys are rejected.
func LoadTable(r io.Reader) (Table, error) {
	t := DefaultTable()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Table{}, fmt.Errorf("dimension table: %s", strict.String())
		}
		return Table{}, fmt.Errorf("dimension table: %w", err)
	}
	return t, nil
}

// LoadTableFile reads TOML overrides from the file at path.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return LoadTable(f)
}

// Spec returns the record for kind k.
func (t Table) Spec(k Kind) (Spec, error) {
	switch k {
	case PumpShaft:
		return t.Shaft, nil
	case Impeller1stStage, ImpellerNStage:
		s := t.Impeller
		s.Stage = k
		return s, nil
	case Diffuser:
		return t.Diffuser, nil
	case StageCasing:
		return t.Casing, nil
	case SuctionGuide:
		return t.Guide, nil
	case ShaftSleeveSeal, ShaftSleeveInterstage:
		s := t.Sleeve
		s.Use = k
		return s, nil
	case WearRingImpeller:
		return t.ImpellerRing, nil
	case WearRingCasing:
		return t.CasingRing, nil
	case ImpellerKey:
		return t.Key, nil
	case MechanicalSealCartridge:
		return t.Seal, nil
	case GlandStudsAndNuts:
		return t.Studs, nil
	case BearingHousingDE, BearingHousingNDE:
		s := t.Bearing
		s.Part = k
		return s, nil
	case Coupling:
		return t.Coupling, nil
	case CouplingGuard:
		return t.Guard, nil
	case DischargeCover:
		return t.Cover, nil
	case BaseplateSkid:
		return t.Baseplate, nil
	case TieBolt:
		return t.TieBolt, nil
	case ThrustCollar:
		return t.Collar, nil
	case BalancingDrumBush:
		return t.Drum, nil
	case StageBushing:
		return t.Bushing, nil
	case LockNutSpacer:
		return t.LockNut, nil
	case BalanceLeakoffPipe:
		return t.Pipe, nil
	case LubeOilSkid:
		return t.LubeSkid, nil
	case FeedPumpSection:
		return t.Section, nil
	}
	return nil, fmt.Errorf("no dimension record for %v", k)
}

// Validate checks the record of every kind and joins the failures.
func (t Table) Validate() error {
	var errs []error
	for _, k := range Kinds() {
		s, err := t.Spec(k)
		if err == nil {
			err = s.Validate()
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build builds kind k from the table.
func (t Table) Build(k Kind, opts Options) (*scene.PartNode, error) {
	s, err := t.Spec(k)
	if err != nil {
		return nil, err
	}
	return Build(s, opts)
}
