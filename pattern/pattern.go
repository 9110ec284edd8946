// Package pattern places repeated features around and along a part's
// centerline, the local Y axis.
package pattern

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrPattern is returned for patterns with non-positive counts or radii.
var ErrPattern = errors.New("invalid pattern")

// mirrorTol is the tolerance used when pairing mirrored instances.
const mirrorTol = 1e-9

// Instance is the placement of one member of a pattern.
type Instance struct {
	Index int
	// Angle is the polar angle of an angular member measured in the XZ
	// plane from +X towards +Z. Zero for axial members.
	Angle    float64
	Position r3.Vec
	// Rotation is an Euler XYZ rotation carrying local +X onto the
	// member's radial direction.
	Rotation r3.Vec
}

// Angular returns n members on a circle of the given radius in the XZ
// plane at angles start + 2π·i/n.
func Angular(n int, radius, start float64) ([]Instance, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: angular count %d", ErrPattern, n)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: angular radius %g", ErrPattern, radius)
	}
	out := make([]Instance, n)
	for i := range out {
		theta := start + 2*math.Pi*float64(i)/float64(n)
		s, c := math.Sincos(theta)
		out[i] = Instance{
			Index:    i,
			Angle:    theta,
			Position: r3.Vec{X: radius * c, Z: radius * s},
			Rotation: r3.Vec{Y: -theta},
		}
	}
	return out, nil
}

// Axial returns n members along +Y starting at first, step apart.
func Axial(n int, first, step float64) ([]Instance, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: axial count %d", ErrPattern, n)
	}
	out := make([]Instance, n)
	for i := range out {
		out[i] = Instance{Index: i, Position: r3.Vec{Y: first + step*float64(i)}}
	}
	return out, nil
}

// Grid combines an axial and an angular pattern: every angular member is
// repeated at every axial station. Members are indexed row by row.
func Grid(axial, angular []Instance) []Instance {
	out := make([]Instance, 0, len(axial)*len(angular))
	for _, a := range axial {
		for _, b := range angular {
			b.Index = len(out)
			b.Position = r3.Add(b.Position, a.Position)
			out = append(out, b)
		}
	}
	return out
}

// Translate offsets every member by v.
func Translate(in []Instance, v r3.Vec) []Instance {
	out := make([]Instance, len(in))
	for i, m := range in {
		m.Position = r3.Add(m.Position, v)
		out[i] = m
	}
	return out
}

// Mirror returns the member rotated 180° about the Y axis.
func Mirror(m Instance) Instance {
	m.Position = r3.Vec{X: -m.Position.X, Y: m.Position.Y, Z: -m.Position.Z}
	m.Angle = math.Mod(m.Angle+math.Pi, 2*math.Pi)
	m.Rotation.Y -= math.Pi
	return m
}

// SplitHalves assigns members to two half groups by the sign of their X
// coordinate, Z breaking ties. It fails unless every member of the first
// half has a mirrored partner in the second.
func SplitHalves(in []Instance) (half1, half2 []Instance, err error) {
	for _, m := range in {
		p := m.Position
		if p.X > mirrorTol || (math.Abs(p.X) <= mirrorTol && p.Z > 0) {
			half1 = append(half1, m)
		} else {
			half2 = append(half2, m)
		}
	}
	if len(half1) != len(half2) {
		return nil, nil, fmt.Errorf("%w: halves hold %d and %d members", ErrPattern, len(half1), len(half2))
	}
	used := make([]bool, len(half2))
	for _, a := range half1 {
		want := Mirror(a).Position
		found := false
		for j, b := range half2 {
			if !used[j] && d3.EqualWithin(b.Position, want, mirrorTol*(1+r3.Norm(want))) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: member %d has no mirror partner", ErrPattern, a.Index)
		}
	}
	return half1, half2, nil
}
