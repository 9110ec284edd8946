package render

import (
	"errors"
	"io"
	"math"
	"sync"

	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// tetrahedraMaxTriangles is the most triangles a single cube can yield:
// six tetrahedra of two triangles each.
const tetrahedraMaxTriangles = 12

// octree renders using marching tetrahedra with octree space sampling.
type octree struct {
	dc        dc3
	todo      []cube
	unwritten triangle3Buffer
}

type cube struct {
	pumpsdf.V3i      // origin of cube as integers
	n           uint // level of cube, size = 1 << n
}

// NewOctreeRenderer returns a marching tetrahedra renderer sampling space
// with an octree. meshCells is the number of cells along the longest side
// of the bounding box. Empty solids render no triangles.
func NewOctreeRenderer(s pumpsdf.SDF3, meshCells int) (Renderer, error) {
	if meshCells < 2 {
		return nil, errors.New("meshCells must be 2 or larger")
	}
	if pumpsdf.IsEmpty(s) {
		return FromTriangles(nil), nil
	}
	// Scale the bounding box about the center to make sure the boundaries
	// aren't on the object surface.
	bb := d3.Box(s.Bounds())
	bb = bb.ScaleAboutCenter(1.01)
	longAxis := d3.Max(bb.Size())
	if longAxis <= 0 || math.IsInf(longAxis, 0) || math.IsNaN(longAxis) {
		return nil, errors.New("solid has degenerate bounds")
	}
	// The smallest cube (side == resolution) is tested for emptiness
	// so the level 0 cube is at half resolution.
	resolution := 0.5 * longAxis / float64(meshCells)
	levels := uint(math.Ceil(math.Log2(longAxis/resolution))) + 1

	divisions := r3.Scale(1/resolution, bb.Size())
	maxCubes := int(divisions.X) * int(divisions.Y) * int(divisions.Z)
	cubes := make([]cube, 1, max(1, maxCubes/64))
	cubes[0] = cube{pumpsdf.V3i{0, 0, 0}, levels - 1}
	return &octree{
		dc:        *newDc3(s, bb.Min, resolution, levels),
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, 1024)},
		todo:      cubes,
	}, nil
}

// ReadTriangles writes triangles rendered from the model into dst.
func (oc *octree) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	if oc.unwritten.Len() > 0 {
		n += oc.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	if len(oc.todo) == 0 && oc.unwritten.Len() == 0 {
		return n, io.EOF
	}
	n += oc.readTriangles(dst[n:])
	return n, nil
}

func (oc *octree) readTriangles(dst []Triangle3) (n int) {
	cubesProcessed := 0
	var newCubes []cube
	for _, cube := range oc.todo {
		if n == len(dst) {
			break
		}
		if n+tetrahedraMaxTriangles > len(dst) {
			// Not enough room for a full cube; park its triangles.
			var tmp [tetrahedraMaxTriangles]Triangle3
			tri, cubes := oc.processCube(tmp[:], cube)
			oc.unwritten.Write(tmp[:tri])
			newCubes = append(newCubes, cubes...)
			cubesProcessed++
			break
		}
		tri, cubes := oc.processCube(dst[n:], cube)
		newCubes = append(newCubes, cubes...)
		cubesProcessed++
		n += tri
	}
	oc.todo = append(oc.todo, newCubes...)
	oc.todo = oc.todo[cubesProcessed:]
	return n
}

// processCube generates triangles for a cube at full resolution, or the
// non empty sub cubes otherwise.
func (oc *octree) processCube(dst []Triangle3, c cube) (writtenTriangles int, newCubes []cube) {
	if c.n == 1 {
		var corners [8]r3.Vec
		var values [8]float64
		for i, off := range cubeCorners {
			corners[i], values[i] = oc.dc.Evaluate(c.Add(off))
		}
		return tetrahedraToTriangles(dst, corners, values), nil
	}
	n := c.n - 1
	s := 1 << n
	for _, off := range cubeCorners {
		candidate := cube{c.Add(pumpsdf.V3i{off[0] / 2 * s, off[1] / 2 * s, off[2] / 2 * s}), n}
		if !oc.dc.IsEmpty(&candidate) {
			newCubes = append(newCubes, candidate)
		}
	}
	return 0, newCubes
}

// cubeCorners are the corner offsets of a level 1 cube.
var cubeCorners = [8]pumpsdf.V3i{
	{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0},
	{0, 0, 2}, {2, 0, 2}, {2, 2, 2}, {0, 2, 2},
}

// cubeTetrahedra splits a cube into six tetrahedra around the 0-6 diagonal.
var cubeTetrahedra = [6][4]int{
	{0, 5, 1, 6}, {0, 1, 2, 6}, {0, 2, 3, 6},
	{0, 3, 7, 6}, {0, 7, 4, 6}, {0, 4, 5, 6},
}

// tetrahedraToTriangles polygonizes the zero level set inside a cube and
// returns the number of triangles written to dst.
func tetrahedraToTriangles(dst []Triangle3, p [8]r3.Vec, v [8]float64) int {
	n := 0
	// Slivers shorter than this collapse once written as float32.
	tol := 1e-4 * r3.Norm(r3.Sub(p[6], p[0]))
	for _, tet := range cubeTetrahedra {
		var in, out []int
		for _, i := range tet {
			if v[i] < 0 {
				in = append(in, i)
			} else {
				out = append(out, i)
			}
		}
		emit := func(a, b, c r3.Vec) {
			t := Triangle3{V: [3]r3.Vec{a, b, c}}
			if t.Degenerate(tol) {
				return
			}
			// Face the normal from the inside corner to the outside corner.
			dir := r3.Sub(p[out[0]], p[in[0]])
			if r3.Dot(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)), dir) < 0 {
				t.V[1], t.V[2] = t.V[2], t.V[1]
			}
			dst[n] = t
			n++
		}
		edge := func(i, j int) r3.Vec { return interpolate(p[i], p[j], v[i], v[j]) }
		switch len(in) {
		case 1:
			emit(edge(in[0], out[0]), edge(in[0], out[1]), edge(in[0], out[2]))
		case 3:
			emit(edge(out[0], in[0]), edge(out[0], in[1]), edge(out[0], in[2]))
		case 2:
			ac, ad := edge(in[0], out[0]), edge(in[0], out[1])
			bc, bd := edge(in[1], out[0]), edge(in[1], out[1])
			emit(ac, ad, bd)
			emit(ac, bd, bc)
		}
	}
	return n
}

// interpolate returns the zero crossing between p1 and p2.
func interpolate(p1, p2 r3.Vec, v1, v2 float64) r3.Vec {
	if v1 == v2 {
		return p1
	}
	t := v1 / (v1 - v2)
	return r3.Add(p1, r3.Scale(t, r3.Sub(p2, p1)))
}

// dc3 is a distance cache over the octree grid. About two thirds of
// lookups hit.
type dc3 struct {
	mu         sync.Mutex
	cache      map[pumpsdf.V3i]float64
	origin     r3.Vec    // origin of the overall bounding cube
	resolution float64   // size of smallest octree cube
	hdiag      []float64 // cube half diagonals by level
	s          pumpsdf.SDF3
}

// Evaluate returns the position of grid point vi and the distance there.
func (dc *dc3) Evaluate(vi pumpsdf.V3i) (r3.Vec, float64) {
	v := r3.Add(dc.origin, r3.Scale(dc.resolution, vi.ToV3()))
	dist, found := dc.read(vi)
	if found {
		return v, dist
	}
	dist = dc.s.Evaluate(v)
	dc.write(vi, dist)
	return v, dist
}

// IsEmpty returns true if the cube contains no surface.
func (dc *dc3) IsEmpty(c *cube) bool {
	s := 1 << (c.n - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	return math.Abs(d) >= dc.hdiag[c.n]
}

func newDc3(s pumpsdf.SDF3, origin r3.Vec, resolution float64, n uint) *dc3 {
	dc := dc3{
		origin:     origin,
		resolution: resolution,
		hdiag:      make([]float64, n),
		s:          s,
		cache:      make(map[pumpsdf.V3i]float64),
	}
	for i := range dc.hdiag {
		side := float64(int(1)<<uint(i)) * dc.resolution
		dc.hdiag[i] = 0.5 * math.Sqrt(3.0*side*side)
	}
	return &dc
}

func (dc *dc3) read(vi pumpsdf.V3i) (float64, bool) {
	dc.mu.Lock()
	dist, found := dc.cache[vi]
	dc.mu.Unlock()
	return dist, found
}

func (dc *dc3) write(vi pumpsdf.V3i, dist float64) {
	dc.mu.Lock()
	dc.cache[vi] = dist
	dc.mu.Unlock()
}
