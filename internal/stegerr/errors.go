// Package stegerr defines the typed failures shared by every stage of the
// encode/decode pipeline. Callers match them with errors.Is and errors.As.
package stegerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyRange indicates a private or public key outside the group range
	ErrInvalidKeyRange = errors.New("stego: invalid key range")

	// ErrKeyMismatch indicates a public key that is not derived from the private key
	ErrKeyMismatch = errors.New("stego: public key does not match private key")

	// ErrInsufficientCapacity indicates the framed message does not fit the carrier
	ErrInsufficientCapacity = errors.New("stego: insufficient carrier capacity")

	// ErrMalformedFrame indicates the embedded header is inconsistent with the image
	ErrMalformedFrame = errors.New("stego: malformed frame")

	// ErrEmptyCarrier indicates an image with no pixels
	ErrEmptyCarrier = errors.New("stego: empty carrier image")
)

// Error wraps an underlying error with the operation that failed
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stego.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Errorf creates a new Error whose message is built from format.
// Use %w in format to keep a sentinel matchable.
func Errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}

// CapacityError reports how many bits a frame needed versus what the carrier offers
type CapacityError struct {
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: need %d bits, carrier holds %d", ErrInsufficientCapacity, e.Required, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
