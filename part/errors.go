package part

import (
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by every error reporting a malformed part
// Spec.
var ErrPrecondition = errors.New("part precondition violated")

// PreconditionError reports the field of a part Spec that
// failed validation.
type PreconditionError struct {
	Part  string
	Field string
	Value any
	// Err is the underlying geometry error, if any.
	Err error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s: %s = %v", e.Part, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PreconditionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPrecondition}
	}
	return []error{ErrPrecondition, e.Err}
}

// checker collects precondition violations for one part.
type checker struct {
	part string
	errs []error
}

func (c *checker) fail(field string, v any) {
	c.errs = append(c.errs, &PreconditionError{Part: c.part, Field: field, Value: v})
}

// positive requires v > 0.
func (c *checker) positive(field string, v float64) {
	if !(v > 0) {
		c.fail(field, v)
	}
}

// count requires n >= min.
func (c *checker) count(field string, n, min int) {
	if n < min {
		c.fail(field, n)
	}
}

// less requires a < b, reporting a under field.
func (c *checker) less(field string, a, b float64) {
	if !(a < b) {
		c.fail(field, a)
	}
}

// require reports v under field unless ok.
func (c *checker) require(field string, v any, ok bool) {
	if !ok {
		c.fail(field, v)
	}
}

func (c *checker) err() error {
	return errors.Join(c.errs...)
}
