package view

import "math"

// Spinner accumulates elapsed display time. Angles derived from it depend
// only on the total elapsed time, not on how it was split into frames.
type Spinner struct {
	Elapsed float64 // seconds
}

// Advance adds dt seconds. Negative or non finite steps are ignored.
func (s *Spinner) Advance(dt float64) {
	if dt > 0 && !math.IsInf(dt, 0) {
		s.Elapsed += dt
	}
}

// Angle returns the rotation of something spinning at rate radians per
// second, in [0, 2π).
func (s Spinner) Angle(rate float64) float64 {
	return SpinAngle(rate, s.Elapsed)
}

// SpinAngle returns rate·t wrapped to [0, 2π).
func SpinAngle(rate, t float64) float64 {
	a := math.Mod(rate*t, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
