package export

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// namespace seeds the name based node UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/soypat/pumpsdf"))

type jsonNode struct {
	Name     string        `json:"name"`
	UUID     string        `json:"uuid"`
	Position [3]float64    `json:"position"`
	Rotation [3]float64    `json:"rotation"`
	Scale    [3]float64    `json:"scale"`
	Matrix   []float64     `json:"matrix"`
	Geometry *jsonGeometry `json:"geometry,omitempty"`
	Material *jsonMaterial `json:"material,omitempty"`
	Asset    *jsonAsset    `json:"asset,omitempty"`
	Spin     *jsonSpin     `json:"spin,omitempty"`
	Children []*jsonNode   `json:"children,omitempty"`
}

type jsonGeometry struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters"`
	Cut        *jsonCut       `json:"cut,omitempty"`
}

type jsonCut struct {
	Tool   *jsonGeometry `json:"tool"`
	Offset [3]float64    `json:"offset"`
}

type jsonMaterial struct {
	Color       uint32  `json:"color"`
	Metalness   float64 `json:"metalness"`
	Roughness   float64 `json:"roughness"`
	Wireframe   bool    `json:"wireframe"`
	Transparent bool    `json:"transparent"`
	Opacity     float64 `json:"opacity"`
	Visible     bool    `json:"visible"`
}

type jsonAsset struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"sha256"`
}

type jsonSpin struct {
	Axis [3]float64 `json:"axis"`
	Rate float64    `json:"rate"`
}

// WriteSceneJSON writes the tree below root as indented JSON. Node UUIDs
// are derived from the node path, so equal trees encode to equal bytes.
func WriteSceneJSON(w io.Writer, root *scene.PartNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(encodeNode(root, ""))
}

func encodeNode(n *scene.PartNode, parent string) *jsonNode {
	path := parent + "/" + n.Name
	out := &jsonNode{
		Name:     n.Name,
		UUID:     uuid.NewSHA1(namespace, []byte(path)).String(),
		Position: vec(n.Pose.Position),
		Rotation: vec(n.Pose.Rotation),
		Scale:    vec(n.Pose.ScaleOrUnit()),
		Matrix:   n.Pose.Matrix().ColumnMajor(),
	}
	if n.Spin.Rate != 0 {
		out.Spin = &jsonSpin{Axis: vec(n.Spin.Axis), Rate: n.Spin.Rate}
	}
	if a := n.Asset; a != nil {
		out.Asset = &jsonAsset{Path: a.Path, Size: a.Size, Digest: a.Digest}
	}
	for _, s := range n.Solids {
		spath := path + "/" + s.Name
		out.Children = append(out.Children, &jsonNode{
			Name:     s.Name,
			UUID:     uuid.NewSHA1(namespace, []byte(spath)).String(),
			Position: vec(s.Pose.Position),
			Rotation: vec(s.Pose.Rotation),
			Scale:    vec(s.Pose.ScaleOrUnit()),
			Matrix:   s.Pose.Matrix().ColumnMajor(),
			Geometry: geometry(s.Primitive),
			Material: material(s.Appearance),
		})
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, encodeNode(c, path))
	}
	return out
}

func geometry(p form3.Primitive) *jsonGeometry {
	g := &jsonGeometry{Type: p.Type, Parameters: p.Params}
	if g.Parameters == nil {
		g.Parameters = map[string]any{}
	}
	if p.Cut != nil {
		g.Cut = &jsonCut{Tool: geometry(p.Cut.Tool), Offset: vec(p.Cut.Offset)}
	}
	return g
}

func material(a scene.Appearance) *jsonMaterial {
	return &jsonMaterial{
		Color:       a.Color,
		Metalness:   a.Metalness,
		Roughness:   a.Roughness,
		Wireframe:   a.Wireframe,
		Transparent: a.Transparent(),
		Opacity:     a.EffectiveOpacity(),
		Visible:     !a.Hidden,
	}
}

func vec(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
