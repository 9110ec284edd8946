package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestEulerXYZOrder(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		x, y, z float64
		in, out r3.Vec
	}{
		// Y acts first about the fixed axes: +X goes to -Z, then X carries -Z to +Y.
		{x: math.Pi / 2, y: math.Pi / 2, in: r3.Vec{X: 1}, out: r3.Vec{Y: 1}},
		// Z acts first: +X goes to +Y, then Y leaves it alone.
		{y: math.Pi / 2, z: math.Pi / 2, in: r3.Vec{X: 1}, out: r3.Vec{Y: 1}},
		{z: -math.Pi / 2, in: r3.Vec{Y: 1}, out: r3.Vec{X: 1}},
	} {
		tf := ComposeTransform(r3.Vec{}, Elem(1), EulerXYZ(test.x, test.y, test.z))
		if got := tf.Transform(test.in); !EqualWithin(got, test.out, tol) {
			t.Errorf("EulerXYZ(%g, %g, %g) moves %v to %v, want %v", test.x, test.y, test.z, test.in, got, test.out)
		}
	}
}

func TestColumnMajor(t *testing.T) {
	tf := ComposeTransform(r3.Vec{X: 1, Y: 2, Z: 3}, Elem(2), Identity)
	m := tf.ColumnMajor()
	if len(m) != 16 || m[15] != 1 {
		t.Fatalf("bad matrix %v", m)
	}
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("translation %v not in the last column", m[12:15])
	}
	if m[0] != 2 || m[5] != 2 || m[10] != 2 {
		t.Errorf("scale diagonal %v %v %v", m[0], m[5], m[10])
	}
}
