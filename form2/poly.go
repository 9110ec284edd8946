package form2

import (
	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/form2/must2"
	"github.com/soypat/pumpsdf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) (s pumpsdf.SDF2, err error) {
	defer recoverShape(&err)
	return must2.Polygon(vertex), err
}

// NewProfile returns an empty closed profile builder.
func NewProfile() *must2.ProfileBuilder {
	return must2.NewProfile()
}

// Nagon return the vertices of a N sided regular polygon.
func Nagon(n int, radius float64) (s d2.Set, err error) {
	defer recoverShape(&err)
	return must2.Nagon(n, radius), err
}
