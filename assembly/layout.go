package assembly

import "fmt"

// Layout holds the axial spacing rules of the assembly, in scene units.
type Layout struct {
	// StageSpacing is the axial distance between consecutive stages.
	StageSpacing float64 `mapstructure:"stage_spacing" yaml:"stage_spacing"`
	Stages       int     `mapstructure:"stages" yaml:"stages"`
	// ExplodeStep is added per stage index when the view is exploded.
	ExplodeStep float64 `mapstructure:"explode_step" yaml:"explode_step"`
	// CartridgePitch is the axial step between consecutive parts of the
	// inner cartridge stack.
	CartridgePitch float64 `mapstructure:"cartridge_pitch" yaml:"cartridge_pitch"`
}

// DefaultLayout returns the layout of the eight stage pump: 40 mm per
// stage and a 20 mm explode step at the default scale.
func DefaultLayout() Layout {
	return Layout{StageSpacing: 4, Stages: 8, ExplodeStep: 2, CartridgePitch: 0.001}
}

// Validate reports a layout that cannot place any stage.
func (l Layout) Validate() error {
	switch {
	case !(l.StageSpacing > 0):
		return fmt.Errorf("layout: stage spacing %g must be positive", l.StageSpacing)
	case l.Stages < 1:
		return fmt.Errorf("layout: stage count %d must be positive", l.Stages)
	case l.ExplodeStep < 0:
		return fmt.Errorf("layout: explode step %g must not be negative", l.ExplodeStep)
	case l.CartridgePitch < 0:
		return fmt.Errorf("layout: cartridge pitch %g must not be negative", l.CartridgePitch)
	}
	return nil
}

// Offset returns the per stage explode increment.
func (l Layout) Offset(exploded bool) float64 {
	if !exploded {
		return 0
	}
	return l.ExplodeStep
}

// Stage returns the axial position of stage i counted from zero:
// spacing·(i+0.5) + i·offset.
func (l Layout) Stage(i int, exploded bool) float64 {
	return l.StageSpacing*(float64(i)+0.5) + float64(i)*l.Offset(exploded)
}

// StagePositions returns the axial position of every stage.
func (l Layout) StagePositions(exploded bool) []float64 {
	out := make([]float64, l.Stages)
	for i := range out {
		out[i] = l.Stage(i, exploded)
	}
	return out
}

// Suction is the axial position of the suction end, half a stage before
// the first stage. It is zero for every layout.
func (l Layout) Suction(exploded bool) float64 {
	return l.Stage(0, exploded) - l.StageSpacing/2
}

// Discharge is the axial position of the discharge end: half a stage past
// the last stage, pushed out by one more explode step so it clears the
// last stage when exploded.
func (l Layout) Discharge(exploded bool) float64 {
	return l.Stage(l.Stages-1, exploded) + l.StageSpacing/2 + l.Offset(exploded)
}

// Midpoint is halfway between the suction and discharge ends.
func (l Layout) Midpoint(exploded bool) float64 {
	return (l.Suction(exploded) + l.Discharge(exploded)) / 2
}

// Anchor names the reference a placement is measured from.
type Anchor int

const (
	Origin Anchor = iota
	Suction
	Discharge
	Midpoint
	// Stage anchors at the stage given by the placement's Stage field.
	Stage
	// Stack anchors at Stage·offset past the origin, for parts already
	// laid out by their stacking sequence.
	Stack
)

// axial returns the position of anchor a on the axis.
func (l Layout) axial(a Anchor, stage int, exploded bool) float64 {
	switch a {
	case Suction:
		return l.Suction(exploded)
	case Discharge:
		return l.Discharge(exploded)
	case Midpoint:
		return l.Midpoint(exploded)
	case Stage:
		return l.Stage(stage, exploded)
	case Stack:
		return float64(stage) * l.Offset(exploded)
	}
	return 0
}
