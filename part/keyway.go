package part

import (
	"math"

	"github.com/soypat/pumpsdf/form3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Keyway is a rectangular slot cut into a constant radius seat of a lathed
// shaft on the +X side.
type Keyway struct {
	Length float64 `toml:"length"` // along the shaft axis
	Width  float64 `toml:"width"`  // tangential
	Depth  float64 `toml:"depth"`  // radial, measured from the seat surface
	Center float64 `toml:"center"` // axial position of the slot's middle
}

// Contained checks that the keyway lies inside the solid of revolution of
// profile and returns the radius of the seat it is cut into.
func (k Keyway) Contained(part string, profile []r2.Vec) (seat float64, err error) {
	c := &checker{part: part}
	c.positive("keyway.length", k.Length)
	c.positive("keyway.width", k.Width)
	c.positive("keyway.depth", k.Depth)
	if len(profile) < 3 {
		c.fail("profile", len(profile))
	}
	if err := c.err(); err != nil {
		return 0, err
	}
	lo, hi := k.Center-k.Length/2, k.Center+k.Length/2
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, p := range profile {
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	if lo < ymin || hi > ymax {
		c.fail("keyway.center", k.Center)
		return 0, c.err()
	}
	// The seat is the outermost axial segment spanning the whole slot.
	for i := range profile {
		a, b := profile[i], profile[(i+1)%len(profile)]
		if a.X <= 0 || math.Abs(a.X-b.X) > 1e-9 {
			continue
		}
		if math.Min(a.Y, b.Y) <= lo && math.Max(a.Y, b.Y) >= hi && a.X > seat {
			seat = a.X
		}
	}
	switch {
	case seat == 0:
		c.fail("keyway.center", k.Center)
	case seat-k.Depth <= 0:
		c.fail("keyway.depth", k.Depth)
	case math.Hypot(seat-k.Depth, k.Width/2) >= seat:
		c.fail("keyway.width", k.Width)
	}
	return seat, c.err()
}

// CutKeyway subtracts the keyway from a lathed shaft. The cutting tool
// extends Depth beyond the seat surface so the slot is open to the outside.
func CutKeyway(part string, shaft form3.Primitive, profile []r2.Vec, k Keyway) (form3.Primitive, error) {
	seat, err := k.Contained(part, profile)
	if err != nil {
		return form3.Primitive{}, err
	}
	tool, err := form3.Box(2*k.Depth, k.Length, k.Width)
	if err != nil {
		return form3.Primitive{}, err
	}
	return form3.Subtract(shaft, tool, r3.Vec{X: seat, Y: k.Center})
}
