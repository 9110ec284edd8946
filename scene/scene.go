// Package scene holds the named, posed and appearance-tagged solids that
// part assemblers produce and adapters consume.
package scene

import (
	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Appearance describes how a solid is shaded.
type Appearance struct {
	Color     uint32 // 0xRRGGBB
	Metalness float64
	Roughness float64
	Wireframe bool
	// Opacity below one marks a see-through solid. Zero is treated as opaque.
	Opacity float64
	// Hidden solids are kept in the tree for reference but never drawn.
	Hidden bool
}

// Transparent reports whether the appearance is see-through.
func (a Appearance) Transparent() bool {
	return a.Opacity > 0 && a.Opacity < 1
}

// EffectiveOpacity returns the opacity with zero treated as opaque.
func (a Appearance) EffectiveOpacity() float64 {
	if a.Opacity <= 0 {
		return 1
	}
	return a.Opacity
}

// Pose is a local transform relative to the parent node.
type Pose struct {
	Position r3.Vec
	// Rotation holds Euler angles applied in XYZ order.
	Rotation r3.Vec
	// Scale is the per-axis scale. The zero value means unit scale.
	Scale r3.Vec
}

// Uniform returns a pose with a uniform scale.
func Uniform(position r3.Vec, scale float64) Pose {
	return Pose{Position: position, Scale: d3.Elem(scale)}
}

// ScaleOrUnit returns the pose's scale with the zero value mapped to one.
func (p Pose) ScaleOrUnit() r3.Vec {
	if p.Scale == (r3.Vec{}) {
		return d3.Elem(1)
	}
	return p.Scale
}

// Matrix returns the transform that scales, rotates then translates.
func (p Pose) Matrix() d3.Transform {
	q := d3.EulerXYZ(p.Rotation.X, p.Rotation.Y, p.Rotation.Z)
	return d3.ComposeTransform(p.Position, p.ScaleOrUnit(), q)
}

// Solid is a primitive with a pose and an appearance. Solids are values
// and are never shared between nodes.
type Solid struct {
	Name       string
	Primitive  form3.Primitive
	Pose       Pose
	Appearance Appearance
}

// Shape returns the solid's SDF in its parent's frame.
func (s Solid) Shape() pumpsdf.SDF3 {
	return pumpsdf.Transform3D(s.Primitive.SDF3, s.Pose.Matrix())
}

// Meshable reports whether the solid contributes to exported meshes:
// visible and opaque.
func (s Solid) Meshable() bool {
	return !s.Appearance.Hidden && !s.Appearance.Transparent()
}

// Spin is a continuous rotation applied by the render surface.
type Spin struct {
	// Axis is the local axis the node spins about. Zero means no spin.
	Axis r3.Vec
	// Rate in radians per second.
	Rate float64
}

// PartNode is a named grouping of solids and nested nodes.
type PartNode struct {
	Name     string
	Pose     Pose
	Solids   []Solid
	Children []*PartNode
	Spin     Spin
	// Asset, when set, marks a node whose geometry comes from an
	// external bundle rather than from parametric solids.
	Asset *AssetGeometry
}

// AssetGeometry identifies an externally loaded geometry bundle.
type AssetGeometry struct {
	Path   string
	Size   int64
	Digest string // hex SHA-256 of the file
}

// Add appends children and returns n.
func (n *PartNode) Add(children ...*PartNode) *PartNode {
	n.Children = append(n.Children, children...)
	return n
}

// Walk calls fn for n and every descendant in depth first order, passing
// the node's world transform relative to n's parent. Returning false
// from fn skips the node's children.
func (n *PartNode) Walk(fn func(node *PartNode, world d3.Transform) bool) {
	n.walk(d3.Transform{}, fn)
}

func (n *PartNode) walk(parent d3.Transform, fn func(*PartNode, d3.Transform) bool) {
	world := parent.Mul(n.Pose.Matrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}

// Find returns the first node named name in depth first order, or nil.
func (n *PartNode) Find(name string) *PartNode {
	var found *PartNode
	n.Walk(func(node *PartNode, _ d3.Transform) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// WorldPose returns the world transform of the node named name.
func (n *PartNode) WorldPose(name string) (d3.Transform, bool) {
	var (
		out d3.Transform
		ok  bool
	)
	n.Walk(func(node *PartNode, world d3.Transform) bool {
		if ok {
			return false
		}
		if node.Name == name {
			out, ok = world, true
			return false
		}
		return true
	})
	return out, ok
}

// Count returns the number of nodes and solids in the tree.
func (n *PartNode) Count() (nodes, solids int) {
	n.Walk(func(node *PartNode, _ d3.Transform) bool {
		nodes++
		solids += len(node.Solids)
		return true
	})
	return nodes, solids
}

// SDF returns the union of every meshable solid of the tree in the frame
// of n's parent. It is empty when nothing is meshable.
func (n *PartNode) SDF() pumpsdf.SDF3 {
	var members []pumpsdf.SDF3
	n.Walk(func(node *PartNode, world d3.Transform) bool {
		for _, s := range node.Solids {
			if s.Meshable() {
				members = append(members, pumpsdf.Transform3D(s.Primitive.SDF3, world.Mul(s.Pose.Matrix())))
			}
		}
		return true
	})
	return pumpsdf.Union3D(members...)
}

// SetWireframe sets the wireframe flag on every solid of the tree.
func (n *PartNode) SetWireframe(on bool) {
	n.Walk(func(node *PartNode, _ d3.Transform) bool {
		for i := range node.Solids {
			node.Solids[i].Appearance.Wireframe = on
		}
		return true
	})
}
