package render

import (
	"errors"
	"io"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/pumpsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDFX adapts a pumpsdf solid to the sdfx SDF3 interface.
func SDFX(s pumpsdf.SDF3) sdf.SDF3 { return sdfxShape{s} }

type sdfxShape struct {
	s pumpsdf.SDF3
}

func (a sdfxShape) Evaluate(p v3.Vec) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a sdfxShape) BoundingBox() sdf.Box3 {
	bb := a.s.Bounds()
	return sdf.Box3{
		Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// SDFXRenderer meshes with the sdfx uniform marching cubes renderer. The
// whole mesh is computed on the first read.
type SDFXRenderer struct {
	s     pumpsdf.SDF3
	cells int
	done  bool
	triangle3Buffer
}

// NewSDFXRenderer returns a Renderer backed by sdfx with meshCells cells
// along the longest side of the bounding box.
func NewSDFXRenderer(s pumpsdf.SDF3, meshCells int) (*SDFXRenderer, error) {
	if meshCells < 2 {
		return nil, errors.New("meshCells must be 2 or larger")
	}
	return &SDFXRenderer{s: s, cells: meshCells}, nil
}

func (r *SDFXRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	if !r.done {
		r.done = true
		if !pumpsdf.IsEmpty(r.s) {
			mc := sdfxrender.NewMarchingCubesUniform(r.cells)
			for _, tri := range sdfxrender.ToTriangles(SDFX(r.s), mc) {
				var t Triangle3
				for j := 0; j < 3; j++ {
					v := tri[j]
					t.V[j] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
				}
				if !t.Degenerate(0) {
					r.Write([]Triangle3{t})
				}
			}
		}
	}
	n := r.Read(dst)
	if r.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}
