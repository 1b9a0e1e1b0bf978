package pin

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package and by the generator
// wraps exactly one of these.
var (
	ErrFormat      = errors.New("invalid personal identification code format")
	ErrInvalidDate = errors.New("invalid birth date")
	ErrChecksum    = errors.New("invalid control digit")
	ErrArgument    = errors.New("invalid argument")
)

// ChecksumError reports a control digit that does not match the computed one.
type ChecksumError struct {
	PIN  string
	Got  int
	Want int
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s has invalid control digit: is %d but should be %d", e.PIN, e.Got, e.Want)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}

// Kind returns a short name for the error kind wrapped by err, or "" if err
// wraps none of them.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrInvalidDate):
		return "date"
	case errors.Is(err, ErrChecksum):
		return "checksum"
	case errors.Is(err, ErrArgument):
		return "argument"
	}
	return ""
}
