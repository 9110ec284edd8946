package assembly

import (
	"fmt"
	"strings"

	"github.com/soypat/pumpsdf/part"
)

// View is what a selection exposes.
type View int

const (
	// ViewPart shows a single part.
	ViewPart View = iota
	// ViewAssembly shows the full feed pump assembly.
	ViewAssembly
	// ViewCartridge shows the inner cartridge stack.
	ViewCartridge
)

// Selection picks the assembly, the cartridge or a single part.
type Selection struct {
	View View
	// Kind is the part shown by ViewPart.
	Kind part.Kind
}

var (
	SelectAssembly  = Selection{View: ViewAssembly}
	SelectCartridge = Selection{View: ViewCartridge}
)

// PartSelection selects the single part k.
func PartSelection(k part.Kind) Selection { return Selection{View: ViewPart, Kind: k} }

// Short keys of the model picker.
var shortKeys = map[string]part.Kind{
	"nuts":      part.GlandStudsAndNuts,
	"pump":      part.FeedPumpSection,
	"cover":     part.DischargeCover,
	"key":       part.ImpellerKey,
	"guard":     part.CouplingGuard,
	"pipe":      part.BalanceLeakoffPipe,
	"collar":    part.ThrustCollar,
	"bush":      part.BalancingDrumBush,
	"skid":      part.LubeOilSkid,
	"baseplate": part.BaseplateSkid,
	"seal":      part.MechanicalSealCartridge,
}

// ParseSelection accepts "assembly", "cartridge", a model picker key such
// as "guard" or a part kind name such as "StageCasing".
func ParseSelection(s string) (Selection, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "assembly", "full":
		return SelectAssembly, nil
	case "cartridge", "group2":
		return SelectCartridge, nil
	}
	if k, ok := shortKeys[key]; ok {
		return PartSelection(k), nil
	}
	k, err := part.ParseKind(key)
	if err != nil {
		return Selection{}, fmt.Errorf("unknown selection %q", s)
	}
	return PartSelection(k), nil
}

// Selections returns the assembly, the cartridge and every part in kind
// order.
func Selections() []Selection {
	out := []Selection{SelectAssembly, SelectCartridge}
	for _, k := range part.Kinds() {
		out = append(out, PartSelection(k))
	}
	return out
}

func (s Selection) String() string {
	switch s.View {
	case ViewAssembly:
		return "assembly"
	case ViewCartridge:
		return "cartridge"
	}
	return s.Kind.String()
}

// Valid reports whether s selects something that can be built.
func (s Selection) Valid() bool {
	switch s.View {
	case ViewAssembly, ViewCartridge:
		return true
	case ViewPart:
		return s.Kind.Valid()
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (s Selection) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal invalid selection %+v", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selection) UnmarshalText(b []byte) (err error) {
	*s, err = ParseSelection(string(b))
	return err
}
