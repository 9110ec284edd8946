package form3

import (
	"math"

	"github.com/soypat/pumpsdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ringThickness is the visual thickness of flat rings relative to their
// outer radius.
const ringThickness = 0.05

// Box returns a box of width x, height y and depth z centered at the origin.
func Box(x, y, z float64) (p Primitive, err error) {
	defer recoverShape(&err)
	return Primitive{
		SDF3:   must3.Box(r3.Vec{X: x, Y: y, Z: z}),
		Type:   TypeBox,
		Params: map[string]any{"width": x, "height": y, "depth": z},
	}, err
}

// Cylinder returns a cylinder or cone along Y centered at the origin.
// Segment counts up to must3.FacetLimit give a faceted prism.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) (Primitive, error) {
	return CylinderSector(radiusTop, radiusBottom, height, segments, 0, 2*math.Pi)
}

// CylinderSector returns a partial cylinder spanning thetaLength radians
// from thetaStart.
func CylinderSector(radiusTop, radiusBottom, height float64, segments int, thetaStart, thetaLength float64) (p Primitive, err error) {
	defer recoverShape(&err)
	return Primitive{
		SDF3: must3.CylinderSector(radiusTop, radiusBottom, height, segments, thetaStart, thetaLength),
		Type: TypeCylinder,
		Params: map[string]any{
			"radiusTop":      radiusTop,
			"radiusBottom":   radiusBottom,
			"height":         height,
			"radialSegments": segments,
			"thetaStart":     thetaStart,
			"thetaLength":    thetaLength,
		},
	}, err
}

// Hollow returns the pair of coincident cylinders used to show a hollow
// cylinder: an outer solid and an inner solid meant to be rendered
// transparent. The outer solid is not bored.
func Hollow(outer, inner, length float64, segments int) (outerP, innerP Primitive, err error) {
	if inner <= 0 || inner >= outer {
		return Primitive{}, Primitive{}, &shapeErr{panicObj: "hollow cylinder needs 0 < inner < outer"}
	}
	outerP, err = Cylinder(outer, outer, length, segments)
	if err != nil {
		return Primitive{}, Primitive{}, err
	}
	innerP, err = Cylinder(inner, inner, length, segments)
	return outerP, innerP, err
}

// Lathe revolves a closed (radius, axial) profile about Y.
func Lathe(points []r2.Vec, segments int) (p Primitive, err error) {
	defer recoverShape(&err)
	if segments < 3 {
		panic("lathe needs at least 3 segments")
	}
	pts := make([][2]float64, len(points))
	for i, v := range points {
		pts[i] = [2]float64{v.X, v.Y}
	}
	return Primitive{
		SDF3:   must3.Lathe(points),
		Type:   TypeLathe,
		Params: map[string]any{"points": pts, "segments": segments},
	}, err
}

// Torus returns a torus in the XY plane. An arc below 2π gives a partial torus.
func Torus(major, minor float64, radialSegments, tubularSegments int, arc float64) (p Primitive, err error) {
	defer recoverShape(&err)
	return Primitive{
		SDF3: must3.Torus(major, minor, arc),
		Type: TypeTorus,
		Params: map[string]any{
			"radius":          major,
			"tube":            minor,
			"radialSegments":  radialSegments,
			"tubularSegments": tubularSegments,
			"arc":             arc,
		},
	}, err
}

// Ring returns a flat annulus in the XY plane, solidified as a thin disc.
func Ring(inner, outer float64, segments int) (p Primitive, err error) {
	defer recoverShape(&err)
	return Primitive{
		SDF3: must3.Ring(inner, outer, ringThickness*outer),
		Type: TypeRing,
		Params: map[string]any{
			"innerRadius":   inner,
			"outerRadius":   outer,
			"thetaSegments": segments,
		},
	}, err
}
