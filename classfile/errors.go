package classfile

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every error reporting invalid class file input.
var ErrMalformed = errors.New("malformed class file")

// MalformedError describes which structure of the input was invalid.
type MalformedError struct {
	What string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.What, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func malformed(what, format string, args ...any) error {
	return &MalformedError{What: what, Err: fmt.Errorf(format, args...)}
}
