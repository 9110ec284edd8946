package form2

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestConstructorErrors(t *testing.T) {
	if _, err := Circle(-1); err == nil {
		t.Error("negative radius should error")
	}
	if _, err := Box(r2.Vec{X: 1, Y: 0}); err == nil {
		t.Error("zero size box should error")
	}
	if _, err := Polygon([]r2.Vec{{}, {X: 1}}); err == nil {
		t.Error("two vertex polygon should error")
	}
	if _, err := Nagon(2, 1); err == nil {
		t.Error("two sided polygon should error")
	}
	s, err := Circle(3)
	if err != nil {
		t.Fatal(err)
	}
	if d := s.Evaluate(r2.Vec{}); d != -3 {
		t.Errorf("circle center distance %g", d)
	}
}
