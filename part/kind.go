package part

import (
	"fmt"
	"strings"
)

// Kind enumerates the mechanical parts of the pump model.
type Kind int

const (
	KindInvalid Kind = iota
	PumpShaft
	Impeller1stStage
	ImpellerNStage
	Diffuser
	StageCasing
	SuctionGuide
	ShaftSleeveSeal
	ShaftSleeveInterstage
	WearRingImpeller
	WearRingCasing
	ImpellerKey
	MechanicalSealCartridge
	GlandStudsAndNuts
	BearingHousingDE
	BearingHousingNDE
	Coupling
	CouplingGuard
	DischargeCover
	BaseplateSkid
	TieBolt
	ThrustCollar
	BalancingDrumBush
	StageBushing
	LockNutSpacer
	BalanceLeakoffPipe
	LubeOilSkid
	FeedPumpSection
	kindEnd
)

var kindNames = [...]string{
	KindInvalid:             "invalid",
	PumpShaft:               "PumpShaft",
	Impeller1stStage:        "Impeller_1stStage",
	ImpellerNStage:          "Impeller_NStage",
	Diffuser:                "Diffuser",
	StageCasing:             "StageCasing",
	SuctionGuide:            "SuctionGuide",
	ShaftSleeveSeal:         "ShaftSleeve_Seal",
	ShaftSleeveInterstage:   "ShaftSleeve_Interstage",
	WearRingImpeller:        "WearRing_Impeller",
	WearRingCasing:          "WearRing_Casing",
	ImpellerKey:             "ImpellerKey",
	MechanicalSealCartridge: "MechanicalSeal",
	GlandStudsAndNuts:       "GlandStudsAndNuts",
	BearingHousingDE:        "BearingHousing_DE",
	BearingHousingNDE:       "BearingHousing_NDE",
	Coupling:                "Coupling",
	CouplingGuard:           "CouplingGuard",
	DischargeCover:          "DischargeCover",
	BaseplateSkid:           "Baseplate",
	TieBolt:                 "TieBolt",
	ThrustCollar:            "ThrustCollar",
	BalancingDrumBush:       "BalancingDrumBush",
	StageBushing:            "StageBushing",
	LockNutSpacer:           "LockNutSpacer",
	BalanceLeakoffPipe:      "BalanceLeakoffPipe",
	LubeOilSkid:             "LubeOilSkid",
	FeedPumpSection:         "FeedPumpSection",
}

// String returns the part type name used in node names.
func (k Kind) String() string {
	if k <= KindInvalid || k >= kindEnd {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a part.
func (k Kind) Valid() bool { return k > KindInvalid && k < kindEnd }

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindEnd-1)
	for k := KindInvalid + 1; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind returns the kind whose name matches s, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k := KindInvalid + 1; k < kindEnd; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown part kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("marshal invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return err
}
