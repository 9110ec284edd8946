// Package part holds the dimension records of every pump component and
// the assemblers that turn them into named scene nodes.
//
// Dimensions are millimetres. A part's solids live in its local frame with
// the centerline on +Y; the node's pose scale converts millimetres to scene
// units.
package part

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/pattern"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultScale is the number of scene units per millimetre: one unit is
// ten millimetres.
const DefaultScale = 0.1

// Spec is the dimension record of one part type. The set of
// implementations is closed.
type Spec interface {
	Kind() Kind
	// Validate reports every malformed dimension as a *PreconditionError.
	Validate() error
	scale() float64
	assemble(a *assembler)
}

// Units carries the scale shared by every spec.
type Units struct {
	// Scale is the number of scene units per millimetre.
	Scale float64 `toml:"scale"`
}

func (u Units) scale() float64 { return u.Scale }

func (u Units) check(c *checker) { c.positive("scale", u.Scale) }

// Options selects the instance of a part being built.
type Options struct {
	// Index distinguishes repeated parts. Zero means a single instance.
	Index int
	// Wireframe draws every solid as a wireframe.
	Wireframe bool
}

// Name returns the node name of the part kind k for the given index.
func Name(k Kind, index int) string {
	if index <= 0 {
		return k.String()
	}
	return k.String() + "_" + strconv.Itoa(index)
}

// Build validates spec and assembles it into a new node tree. Calls with
// equal arguments return equal trees that share no state.
func Build(spec Spec, opts Options) (*scene.PartNode, error) {
	if spec == nil {
		return nil, errors.New("nil part spec")
	}
	name := Name(spec.Kind(), opts.Index)
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	a := &assembler{
		name:      name,
		wireframe: opts.Wireframe,
		root:      &scene.PartNode{Name: name, Pose: scene.Uniform(r3.Vec{}, spec.scale())},
	}
	spec.assemble(a)
	if a.err != nil {
		return nil, fmt.Errorf("building %s: %w", name, &PreconditionError{Part: name, Field: "geometry", Value: a.errAt, Err: a.err})
	}
	return a.root, nil
}

// assembler accumulates the solids of one part node. The first geometry
// error stops further solids from being added.
type assembler struct {
	name      string
	wireframe bool
	root      *scene.PartNode
	err       error
	errAt     string
}

// shape records err and returns p.
func (a *assembler) shape(p form3.Primitive, err error) form3.Primitive {
	if err != nil && a.err == nil {
		a.err = err
	}
	return p
}

// instances records err and returns in.
func (a *assembler) instances(in []pattern.Instance, err error) []pattern.Instance {
	if err != nil && a.err == nil {
		a.err = err
	}
	return in
}

// group adds a child node named <part>_<sub>.
func (a *assembler) group(parent *scene.PartNode, sub string, pose scene.Pose) *scene.PartNode {
	n := &scene.PartNode{Name: a.name + "_" + sub, Pose: pose}
	parent.Add(n)
	return n
}

// solid adds a solid named <part>_<sub>, suffixed with _<n> when n > 0.
func (a *assembler) solid(node *scene.PartNode, sub string, n int, p form3.Primitive, pose scene.Pose, look scene.Appearance) {
	name := a.name + "_" + sub
	if n > 0 {
		name += "_" + strconv.Itoa(n)
	}
	if a.err != nil {
		if a.errAt == "" {
			a.errAt = name
		}
		return
	}
	look.Wireframe = look.Wireframe || a.wireframe
	node.Solids = append(node.Solids, scene.Solid{
		Name:       name,
		Primitive:  p,
		Pose:       pose,
		Appearance: look,
	})
}

// hollow adds the outer solid and transparent bore of a hollow cylinder.
func (a *assembler) hollow(node *scene.PartNode, sub string, outer, inner, length float64, segments int, pose scene.Pose, look scene.Appearance) {
	o, i, err := form3.Hollow(outer, inner, length, segments)
	a.shape(o, err)
	a.solid(node, sub, 0, o, pose, look)
	a.solid(node, sub+"_Bore", 0, i, pose, bore)
}

// at returns the pose of a pattern member.
func at(in pattern.Instance) scene.Pose {
	return scene.Pose{Position: in.Position, Rotation: in.Rotation}
}

// radial returns the pose of a pattern member whose Y axis is turned to
// point along the member's radial direction.
func radial(in pattern.Instance) scene.Pose {
	return scene.Pose{Position: in.Position, Rotation: r3.Vec{Y: in.Rotation.Y, Z: -math.Pi / 2}}
}

// flat turns XY-plane geometry (rings, tori) to lie across the Y axis.
func flat(y float64) scene.Pose {
	return scene.Pose{Position: r3.Vec{Y: y}, Rotation: r3.Vec{X: -math.Pi / 2}}
}

// along lays Y-axis geometry along X.
func along(p r3.Vec) scene.Pose {
	return scene.Pose{Position: p, Rotation: r3.Vec{Z: math.Pi / 2}}
}

func posed(p, rot r3.Vec) scene.Pose { return scene.Pose{Position: p, Rotation: rot} }

func ypos(y float64) scene.Pose { return scene.Pose{Position: r3.Vec{Y: y}} }

func pos(x, y, z float64) scene.Pose { return scene.Pose{Position: r3.Vec{X: x, Y: y, Z: z}} }
