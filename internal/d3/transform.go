package d3

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is an affine 3D transformation: a linear 3x3 part
// followed by a translation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// Linear part stored row-major with the identity subtracted so that
	//  if T == (Transform{})
	// is an identity check.
	d   [9]float64
	off r3.Vec
}

func (t Transform) at(i, j int) float64 {
	v := t.d[3*i+j]
	if i == j {
		v++
	}
	return v
}

func (t *Transform) set(i, j int, v float64) {
	if i == j {
		v--
	}
	t.d[3*i+j] = v
}

// Transform applies the Transform to v and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t.at(0, 0)*v.X + t.at(0, 1)*v.Y + t.at(0, 2)*v.Z + t.off.X,
		Y: t.at(1, 0)*v.X + t.at(1, 1)*v.Y + t.at(1, 2)*v.Z + t.off.Y,
		Z: t.at(2, 0)*v.X + t.at(2, 1)*v.Y + t.at(2, 2)*v.Z + t.off.Z,
	}
}

// TransformDir applies only the linear part of t to v.
func (t Transform) TransformDir(v r3.Vec) r3.Vec {
	return r3.Sub(t.Transform(v), t.off)
}

// ComposeTransform creates a transform that scales, then rotates by q,
// then translates to position.
// The identity Transform is constructed with
//
//	ComposeTransform(Vec{}, Vec{1,1,1}, Rotation{Real: 1})
func ComposeTransform(position, scale r3.Vec, q r3.Rotation) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx, yy, zz := q.Imag*x2, q.Jmag*y2, q.Kmag*z2
	xy, xz, yz := q.Imag*y2, q.Imag*z2, q.Jmag*z2
	wx, wy, wz := q.Real*x2, q.Real*y2, q.Real*z2

	var t Transform
	t.set(0, 0, (1-(yy+zz))*scale.X)
	t.set(1, 0, (xy+wz)*scale.X)
	t.set(2, 0, (xz-wy)*scale.X)

	t.set(0, 1, (xy-wz)*scale.Y)
	t.set(1, 1, (1-(xx+zz))*scale.Y)
	t.set(2, 1, (yz+wx)*scale.Y)

	t.set(0, 2, (xz+wy)*scale.Z)
	t.set(1, 2, (yz-wx)*scale.Z)
	t.set(2, 2, (1-(xx+yy))*scale.Z)
	t.off = position
	return t
}

// EulerXYZ returns q = qx*qy*qz: intrinsic X-Y-Z angles, rotating about
// the body's X axis, then its new Y, then its new Z. About fixed parent
// axes the order is Z first, then Y, then X.
func EulerXYZ(x, y, z float64) r3.Rotation {
	qx := quat.Number(r3.NewRotation(x, r3.Vec{X: 1}))
	qy := quat.Number(r3.NewRotation(y, r3.Vec{Y: 1}))
	qz := quat.Number(r3.NewRotation(z, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(quat.Mul(qx, qy), qz))
}

// Identity is the rotation that leaves vectors unchanged.
var Identity = r3.Rotation{Real: 1}

// Translate adds v to the positional part of the Transform.
func (t Transform) Translate(v r3.Vec) Transform {
	t.off = r3.Add(t.off, v)
	return t
}

// Mul returns the transform that applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	var m Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.set(i, j, t.at(i, 0)*b.at(0, j)+t.at(i, 1)*b.at(1, j)+t.at(i, 2)*b.at(2, j))
		}
	}
	m.off = t.Transform(b.off)
	return m
}

// Det returns the determinant of the linear part of the Transform.
func (t Transform) Det() float64 {
	return t.at(0, 0)*(t.at(1, 1)*t.at(2, 2)-t.at(1, 2)*t.at(2, 1)) -
		t.at(0, 1)*(t.at(1, 0)*t.at(2, 2)-t.at(1, 2)*t.at(2, 0)) +
		t.at(0, 2)*(t.at(1, 0)*t.at(2, 1)-t.at(1, 1)*t.at(2, 0))
}

// Stretch returns the geometric mean scaling factor of the Transform.
// For similarity transforms it is the exact uniform scale.
func (t Transform) Stretch() float64 {
	return math.Cbrt(math.Abs(t.Det()))
}

// Inv returns the inverse of the transform such that
// t.Inv().Mul(t) is the identity Transform.
// If the matrix is singular Inv panics.
func (t Transform) Inv() Transform {
	if t == (Transform{}) {
		return t
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		panic("d3: singular transform")
	}
	d := 1 / det
	var m Transform
	m.set(0, 0, (t.at(1, 1)*t.at(2, 2)-t.at(1, 2)*t.at(2, 1))*d)
	m.set(0, 1, (t.at(0, 2)*t.at(2, 1)-t.at(0, 1)*t.at(2, 2))*d)
	m.set(0, 2, (t.at(0, 1)*t.at(1, 2)-t.at(0, 2)*t.at(1, 1))*d)
	m.set(1, 0, (t.at(1, 2)*t.at(2, 0)-t.at(1, 0)*t.at(2, 2))*d)
	m.set(1, 1, (t.at(0, 0)*t.at(2, 2)-t.at(0, 2)*t.at(2, 0))*d)
	m.set(1, 2, (t.at(0, 2)*t.at(1, 0)-t.at(0, 0)*t.at(1, 2))*d)
	m.set(2, 0, (t.at(1, 0)*t.at(2, 1)-t.at(1, 1)*t.at(2, 0))*d)
	m.set(2, 1, (t.at(0, 1)*t.at(2, 0)-t.at(0, 0)*t.at(2, 1))*d)
	m.set(2, 2, (t.at(0, 0)*t.at(1, 1)-t.at(0, 1)*t.at(1, 0))*d)
	m.off = r3.Scale(-1, m.TransformDir(t.off))
	return m
}

// TransformBox returns the axis aligned box enclosing the transformed
// corners of b.
func (t Transform) TransformBox(b Box) Box {
	v := b.Vertices()
	for i := range v {
		v[i] = t.Transform(v[i])
	}
	return Box{Min: v.Min(), Max: v.Max()}
}

// Equals tests the equality of the Transforms to within a tolerance.
func (t Transform) Equals(b Transform, tolerance float64) bool {
	for i := range t.d {
		if math.Abs(t.d[i]-b.d[i]) > tolerance {
			return false
		}
	}
	return EqualWithin(t.off, b.off, tolerance)
}

// SliceCopy returns the Transform as a 4x4 matrix in row major
// storage format. It returns 16 elements.
func (t Transform) SliceCopy() []float64 {
	return []float64{
		t.at(0, 0), t.at(0, 1), t.at(0, 2), t.off.X,
		t.at(1, 0), t.at(1, 1), t.at(1, 2), t.off.Y,
		t.at(2, 0), t.at(2, 1), t.at(2, 2), t.off.Z,
		0, 0, 0, 1,
	}
}

// ColumnMajor returns the Transform as 16 column-major elements, the
// layout used by WebGL style scene formats.
func (t Transform) ColumnMajor() []float64 {
	r := t.SliceCopy()
	c := make([]float64, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			c[4*j+i] = r[4*i+j]
		}
	}
	return c
}
