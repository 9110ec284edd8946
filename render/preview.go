package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View places the camera of a preview. Positions are in the bi-unit cube
// the model is fitted into.
type View struct {
	Eye, LookAt, Up r3.Vec
	Near, Far       float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders this many times larger before downsampling.
	Supersample int
}

// DefaultView looks at the model from the (1,1,1) octant with Z up.
func DefaultView() View {
	return View{
		Eye:         r3.Vec{X: 3, Y: 3, Z: 3},
		Up:          r3.Vec{Z: 1},
		Near:        1,
		Far:         10,
		Width:       800,
		Height:      600,
		Supersample: 2,
	}
}

// Preview renders a phong shaded image of model.
func Preview(model []Triangle3, view View) (image.Image, error) {
	if len(model) == 0 {
		return nil, ErrEmptyMesh
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	scale := max(view.Supersample, 1)
	tris := make([]*fauxgl.Triangle, 0, len(model))
	for _, t := range model {
		tris = append(tris, fauxgl.NewTriangleForPoints(fv(t.V[0]), fv(t.V[1]), fv(t.V[2])))
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fv(view.Eye)
		center = fv(view.LookAt)
		up     = fv(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear), nil
}

func fv(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }
