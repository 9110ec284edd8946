package form3

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrShape is wrapped by every error returned from an invalid primitive
// construction.
var ErrShape = errors.New("invalid shape")

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

func (s *shapeErr) Unwrap() error { return ErrShape }

// recoverShape converts a constructor panic into an error.
func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}
