package concise

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every ErrValueOutOfRange.
	ErrOutOfRange = errors.New("value out of range")

	// ErrMalformed is matched by every ErrMalformedEncoding.
	ErrMalformed = errors.New("malformed encoding")
)

// ErrValueOutOfRange is returned when a value exceeds the maximum of the set's encoding.
// The set is left unchanged.
type ErrValueOutOfRange struct {
	Value uint32
	Max   uint32
}

func (e *ErrValueOutOfRange) Error() string {
	return fmt.Sprintf("value out of range: %d exceeds maximum %d", e.Value, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *ErrValueOutOfRange) Is(target error) bool { return target == ErrOutOfRange }

// ErrMalformedEncoding indicates a persisted word buffer that cannot be decoded.
//
// Offset is the byte offset of the offending field, or -1 when the problem
// concerns the buffer as a whole.
type ErrMalformedEncoding struct {
	Reason string
	Offset int
}

func (e *ErrMalformedEncoding) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("malformed encoding: %s", e.Reason)
	}
	return fmt.Sprintf("malformed encoding at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrMalformed.
func (e *ErrMalformedEncoding) Is(target error) bool { return target == ErrMalformed }

func malformed(offset int, format string, args ...any) error {
	return &ErrMalformedEncoding{Reason: fmt.Sprintf(format, args...), Offset: offset}
}
