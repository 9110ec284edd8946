package render_test

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hschendel/stl"
	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/form3/must3"
	"github.com/soypat/pumpsdf/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

const quality = 30

func shaft() pumpsdf.SDF3 { return must3.Cylinder(2, 2, 12, 32) }

func renderAll(t testing.TB, s pumpsdf.SDF3) []render.Triangle3 {
	t.Helper()
	oct, err := render.NewOctreeRenderer(s, quality)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(oct)
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestCreateSTLReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shaft.stl")
	oct, err := render.NewOctreeRenderer(shaft(), quality)
	if err != nil {
		t.Fatal(err)
	}
	n, err := render.CreateSTL(path, oct)
	if err != nil {
		t.Fatal(err)
	}
	solid, err := stl.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(solid.Triangles) != n {
		t.Fatalf("stl holds %d triangles, CreateSTL reported %d", len(solid.Triangles), n)
	}
	if want := len(renderAll(t, shaft())); n != want {
		t.Errorf("streamed %d triangles, RenderAll gives %d", n, want)
	}
	for _, tri := range solid.Triangles {
		for _, v := range tri.Vertices {
			if math.Abs(float64(v[1])) > 6.1 || math.Hypot(float64(v[0]), float64(v[2])) > 2.1 {
				t.Fatalf("vertex %v outside the shaft", v)
			}
		}
	}
}

func TestWriteOBJSharesVertices(t *testing.T) {
	model := renderAll(t, shaft())
	var b bytes.Buffer
	stats, err := render.WriteOBJ(&b, []render.OBJGroup{
		{Name: "Pump Shaft", Triangles: model},
		{Name: "empty"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Objects != 1 {
		t.Errorf("wrote %d objects, want 1", stats.Objects)
	}
	if stats.Vertices >= 3*stats.Faces/2 {
		t.Errorf("%d vertices for %d faces, vertices not shared", stats.Vertices, stats.Faces)
	}
	out := b.String()
	if !strings.Contains(out, "o Pump_Shaft\n") {
		t.Error("object name not sanitized")
	}
	if got := strings.Count(out, "\nf "); got != stats.Faces {
		t.Errorf("%d face lines, stats say %d", got, stats.Faces)
	}
	if _, err := render.WriteOBJ(&b, nil); !errors.Is(err, render.ErrEmptyMesh) {
		t.Errorf("want ErrEmptyMesh, got %v", err)
	}
}

func TestSDFXRendererAgrees(t *testing.T) {
	ours := render.Bounds(renderAll(t, shaft()))
	sx, err := render.NewSDFXRenderer(shaft(), quality)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(sx)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("sdfx rendered nothing")
	}
	theirs := render.Bounds(model)
	const tol = 0.5
	for _, pair := range [][2]r3.Vec{{ours.Min, theirs.Min}, {ours.Max, theirs.Max}} {
		d := r3.Sub(pair[0], pair[1])
		if math.Abs(d.X) > tol || math.Abs(d.Y) > tol || math.Abs(d.Z) > tol {
			t.Errorf("bounds differ: octree %v, sdfx %v", pair[0], pair[1])
		}
	}
}

func TestPreviewDeterministic(t *testing.T) {
	model := renderAll(t, shaft())
	view := render.DefaultView()
	view.Width, view.Height = 160, 120
	encode := func() []byte {
		img, err := render.Preview(model, view)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
			t.Fatalf("preview is %v", b)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	equal, err := cmpimg.EqualApprox("png", encode(), encode(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("previews of the same mesh differ")
	}
	if _, err := render.Preview(nil, view); !errors.Is(err, render.ErrEmptyMesh) {
		t.Errorf("want ErrEmptyMesh, got %v", err)
	}
}
