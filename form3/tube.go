package form3

import (
	"github.com/soypat/pumpsdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Path is a straight lead-in, a quadratic Bézier bend and a straight
// lead-out, the route of bent pipework.
type Path struct {
	LeadIn  [2]r3.Vec
	Bend    [3]r3.Vec // start, control, end
	LeadOut [2]r3.Vec
	// BendSegments is the number of samples along the bend.
	BendSegments int
}

// Points returns the polyline approximating the path.
func (p Path) Points() []r3.Vec {
	n := p.BendSegments
	if n < 1 {
		n = 16
	}
	pts := []r3.Vec{p.LeadIn[0], p.LeadIn[1]}
	pts = append(pts, must3.QuadraticPath(p.Bend[0], p.Bend[1], p.Bend[2], n)...)
	return append(pts, p.LeadOut[0], p.LeadOut[1])
}

// SweptTube sweeps a tube of outer and inner radius along path.
// An inner radius of zero gives a solid rod. The descriptor path is a
// CurvePath of straight segments through Points.
func SweptTube(path Path, outer, inner float64, radialSegments int) (p Primitive, err error) {
	defer recoverShape(&err)
	pts := path.Points()
	return Primitive{
		SDF3: must3.Tube(pts, outer, inner),
		Type: TypeTube,
		Params: map[string]any{
			"path":            "CurvePath",
			"points":          vecList(pts),
			"tubularSegments": len(pts) - 1,
			"radius":          outer,
			"radialSegments":  radialSegments,
			"closed":          false,
		},
	}, err
}

// HelicalTube returns a coil spring about Y: a tube of radius thickness
// swept along a helix of the given radius, height and number of coils.
// The helix is sampled into a polyline and both the SDF and the
// descriptor follow that polyline unsmoothed.
func HelicalTube(radius, height, coils, thickness float64) (p Primitive, err error) {
	defer recoverShape(&err)
	const perCoil = 32
	pts := must3.HelixPath(radius, height, coils, perCoil)
	return Primitive{
		SDF3: must3.Tube(pts, thickness, 0),
		Type: TypeTube,
		Params: map[string]any{
			"path":            "CurvePath",
			"points":          vecList(pts),
			"tubularSegments": len(pts) - 1,
			"radius":          thickness,
			"radialSegments":  8,
			"closed":          false,
		},
	}, err
}

func vecList(v []r3.Vec) [][3]float64 {
	out := make([][3]float64, len(v))
	for i, p := range v {
		out[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}
