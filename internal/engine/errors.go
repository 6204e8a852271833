package engine

import "errors"

var (
	// ErrInvalidInterval means a booking's effective end does not fall
	// strictly after its start, or a date/time field failed to parse.
	ErrInvalidInterval = errors.New("invalid interval: end must be after start")

	// ErrUnknownResource means a candidate references a classroom id that is
	// not present in the supplied classroom set.
	ErrUnknownResource = errors.New("unknown resource")
)
