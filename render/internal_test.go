package render

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

type sphere struct{ r float64 }

func (s sphere) Evaluate(p r3.Vec) float64 { return r3.Norm(p) - s.r }
func (s sphere) Bounds() r3.Box {
	return r3.Box{Min: d3.Elem(-s.r), Max: d3.Elem(s.r)}
}

func TestTetrahedraFaceOutward(t *testing.T) {
	const cells = 20
	oct, err := NewOctreeRenderer(sphere{r: 1}, cells)
	if err != nil {
		t.Fatal(err)
	}
	model, err := RenderAll(oct)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) < 100 {
		t.Fatalf("only %d triangles for a sphere", len(model))
	}
	cell := 2.02 / cells
	for i, tri := range model {
		c := r3.Scale(1.0/3, r3.Add(r3.Add(tri.V[0], tri.V[1]), tri.V[2]))
		if r3.Dot(tri.Normal(), c) <= 0 {
			t.Fatalf("triangle %d faces inward", i)
		}
		for _, v := range tri.V {
			if math.Abs(r3.Norm(v)-1) > cell {
				t.Fatalf("vertex %v off the surface", v)
			}
		}
	}
}

func TestSingleTetrahedron(t *testing.T) {
	var p [8]r3.Vec
	var v [8]float64
	for i, off := range cubeCorners {
		p[i] = r3.Scale(0.5, off.ToV3())
		v[i] = 1
	}
	// Only corner 0 is inside: every tetrahedron shares it.
	v[0] = -1
	dst := make([]Triangle3, tetrahedraMaxTriangles)
	n := tetrahedraToTriangles(dst, p, v)
	if n != len(cubeTetrahedra) {
		t.Fatalf("got %d triangles, want one per tetrahedron", n)
	}
	for _, tri := range dst[:n] {
		if r3.Dot(tri.Normal(), r3.Vec{X: 1, Y: 1, Z: 1}) <= 0 {
			t.Errorf("triangle %v faces the inside corner", tri.V)
		}
	}
	for i := range v {
		v[i] = -1
	}
	if n := tetrahedraToTriangles(dst, p, v); n != 0 {
		t.Errorf("solid cube produced %d triangles", n)
	}
}

func TestReadTrianglesSmallBuffer(t *testing.T) {
	s := sphere{r: 3}
	oct, err := NewOctreeRenderer(s, 16)
	if err != nil {
		t.Fatal(err)
	}
	want, err := RenderAll(oct)
	if err != nil {
		t.Fatal(err)
	}
	oct, _ = NewOctreeRenderer(s, 16)
	buf := make([]Triangle3, 5)
	var got []Triangle3
	for {
		n, err := oct.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("small buffer read %d triangles, want %d", len(got), len(want))
	}
}

func TestEmptySolid(t *testing.T) {
	oct, err := NewOctreeRenderer(pumpsdf.Empty3D(), 10)
	if err != nil {
		t.Fatal(err)
	}
	model, err := RenderAll(oct)
	if err != nil || len(model) != 0 {
		t.Fatalf("empty solid gave %d triangles, err %v", len(model), err)
	}
	if err := WriteSTL(io.Discard, model); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("want ErrEmptyMesh, got %v", err)
	}
	if _, err := NewOctreeRenderer(sphere{r: 1}, 1); err == nil {
		t.Error("accepted a single cell")
	}
}

func TestSTLWriteReadback(t *testing.T) {
	const (
		quality = 40
		tol     = 1e-5
	)
	s := sphere{r: 10}
	rtol := tol * r3.Norm(d3.Box(s.Bounds()).Size())
	oct, err := NewOctreeRenderer(s, quality)
	if err != nil {
		t.Fatal(err)
	}
	input, err := RenderAll(oct)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := WriteSTL(&b, input); err != nil {
		t.Fatal(err)
	}
	output, err := readBinarySTL(&b)
	if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	mismatches := 0
	for iface, expect := range input {
		got := output[iface]
		for i := range expect.V {
			if !d3.EqualWithin(got.V[i], expect.V[i], rtol) {
				mismatches++
				t.Errorf("%dth triangle out of tolerance. got vertex %0.5g, want %0.5g", iface, got.V[i], expect.V[i])
			}
		}
		if mismatches > 10 {
			t.Fatal("too many mismatches")
		}
	}
}

func TestSTLTriangleValidate(t *testing.T) {
	tri := Triangle3{V: [3]r3.Vec{{}, {X: 1}, {Y: 1}}}
	good := stlFrom(tri)
	if err := good.validate(); err != nil {
		t.Fatalf("well formed triangle rejected: %v", err)
	}
	if n := good.normalFromVertices(); n != [3]float32{0, 0, 1} {
		t.Errorf("normal from vertices %v, want +Z", n)
	}
	flipped := good
	flipped.Normal = [3]float32{0, 0, -1}
	if err := flipped.validate(); err != nil {
		t.Errorf("reversed normal rejected: %v", err)
	}
	skewed := good
	skewed.Normal = [3]float32{1, 0, 0}
	if err := skewed.validate(); !errors.Is(err, errCalculatedNormalMismatch) {
		t.Errorf("want normal mismatch, got %v", err)
	}
	collapsed := good
	collapsed.Vertex2 = collapsed.Vertex1
	if err := collapsed.validate(); err == nil {
		t.Error("degenerate triangle accepted")
	}
}
