package errors

import "errors"

var (
	ErrNotFound = errors.New("classroom not found")

	ErrInvalidID = errors.New("invalid classroom ID format")

	ErrDuplicateCode = errors.New("classroom code already in use")
)
