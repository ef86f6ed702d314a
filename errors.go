package guuid

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is the class of errors returned when a textual or binary
	// representation is not a well-formed UUID.
	ErrFormat = errors.New("guuid: malformed UUID")

	// ErrValidation is the class of errors returned when a caller-supplied
	// generation input violates a structural precondition.
	ErrValidation = errors.New("guuid: invalid generation input")

	// ErrInvalidFormat indicates that the UUID string format is invalid
	ErrInvalidFormat = fmt.Errorf("%w: invalid UUID format", ErrFormat)

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = fmt.Errorf("%w: invalid UUID length (expected 16 bytes)", ErrFormat)

	// ErrInvalidVersion indicates that the UUID version is not supported
	ErrInvalidVersion = fmt.Errorf("%w: invalid or unsupported UUID version", ErrFormat)

	// ErrInvalidNode indicates that a custom node is not 12 hex digits
	ErrInvalidNode = fmt.Errorf("%w: node must be 12 hex digits", ErrValidation)

	// ErrInvalidClockSeq indicates that a custom clock sequence does not fit in 14 bits
	ErrInvalidClockSeq = fmt.Errorf("%w: clock sequence must be 14 bits", ErrValidation)

	// ErrInvalidName indicates that a name is not a whole number of bytes
	ErrInvalidName = fmt.Errorf("%w: name must be a whole number of bytes", ErrValidation)
)
