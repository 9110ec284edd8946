package form3

import (
	"maps"

	"github.com/soypat/pumpsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry type names as understood by WebGL scene loaders.
const (
	TypeBox      = "BoxGeometry"
	TypeCylinder = "CylinderGeometry"
	TypeLathe    = "LatheGeometry"
	TypeTorus    = "TorusGeometry"
	TypeRing     = "RingGeometry"
	TypeTube     = "TubeGeometry"
)

// Primitive is a solid in its canonical local frame together with the
// descriptor of the geometry that produced it.
type Primitive struct {
	pumpsdf.SDF3
	// Type names the geometry, e.g. "CylinderGeometry".
	Type string
	// Params holds the construction parameters keyed by their
	// conventional names (radiusTop, height, points...).
	Params map[string]any
	// Cut is the tool subtracted from the primitive, if any.
	Cut *Cut
}

// Cut describes a boolean subtraction applied to a primitive.
type Cut struct {
	Tool   Primitive
	Offset r3.Vec
}

// Param returns the float parameter named key or zero.
func (p Primitive) Param(key string) float64 {
	switch v := p.Params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Subtract removes tool, translated by offset, from base. The result keeps
// base's descriptor and bounds and records the cut.
func Subtract(base, tool Primitive, offset r3.Vec) (Primitive, error) {
	if base.SDF3 == nil || tool.SDF3 == nil {
		return Primitive{}, &shapeErr{panicObj: "nil primitive in subtraction"}
	}
	if base.Cut != nil {
		return Primitive{}, &shapeErr{panicObj: "primitive already carries a cut"}
	}
	moved := pumpsdf.Translate3D(tool.SDF3, offset)
	return Primitive{
		SDF3:   pumpsdf.Difference3D(base.SDF3, moved),
		Type:   base.Type,
		Params: maps.Clone(base.Params),
		Cut:    &Cut{Tool: tool, Offset: offset},
	}, nil
}
