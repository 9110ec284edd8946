package render

import (
	"errors"
	"io"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF. Triangles returned together with
// io.EOF are kept.
func RenderAll(r Renderer) ([]Triangle3, error) {
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err := r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return result, err
		}
	}
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }

// sliceRenderer serves a precomputed mesh.
type sliceRenderer struct {
	triangle3Buffer
}

// FromTriangles returns a Renderer serving model.
func FromTriangles(model []Triangle3) Renderer {
	return &sliceRenderer{triangle3Buffer{buf: model}}
}

func (s *sliceRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	n := s.Read(dst)
	if s.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}
