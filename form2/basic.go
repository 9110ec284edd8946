package form2

import (
	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Circle returns the SDF2 for a 2d circle.
func Circle(radius float64) (s pumpsdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Circle(radius), err
}

// Box returns a 2d rectangle centered at the origin.
func Box(size r2.Vec) (s pumpsdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Box(size), err
}
