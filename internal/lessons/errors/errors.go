package errors

import "errors"

var (
	ErrNotFound = errors.New("lesson not found")

	ErrInvalidID = errors.New("invalid lesson ID format")

	ErrTimeConflict = errors.New("lesson time conflicts with existing lesson")

	ErrLessonCompleted = errors.New("completed lessons cannot be modified")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
