package model

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Lesson occupies exactly one classroom for exactly one calendar date. Dates
// are local calendar dates ("2006-01-02") and times are local wall-clock
// times of day ("15:04"); EndTime may be empty, in which case the configured
// default lesson duration applies.
type Lesson struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=150"`
	CourseName  string    `json:"course_name,omitempty" bson:"course_name" validate:"omitempty,max=100"`
	SubjectName string    `json:"subject_name,omitempty" bson:"subject_name" validate:"omitempty,max=100"`
	ClassroomID string    `json:"classroom_id" bson:"classroom_id" validate:"required,mongodb"`
	Date        string    `json:"date" bson:"date" validate:"required,lesson_date"`
	StartTime   string    `json:"start_time" bson:"start_time" validate:"required,lesson_time"`
	EndTime     string    `json:"end_time,omitempty" bson:"end_time" validate:"omitempty,lesson_time"`
	Status      string    `json:"status" bson:"status" validate:"required,oneof=draft scheduled active completed cancelled"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// IsCompleted reports whether the lesson is locked against further edits.
func (l *Lesson) IsCompleted() bool {
	return l.Status == StatusCompleted
}

type LessonUpdate struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	CourseName  *string `json:"course_name,omitempty" validate:"omitempty,max=100"`
	SubjectName *string `json:"subject_name,omitempty" validate:"omitempty,max=100"`
	ClassroomID string  `json:"classroom_id,omitempty" validate:"omitempty,mongodb"`
	Date        string  `json:"date,omitempty" validate:"omitempty,lesson_date"`
	StartTime   string  `json:"start_time,omitempty" validate:"omitempty,lesson_time"`
	EndTime     *string `json:"end_time,omitempty" validate:"omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled active completed cancelled"`
}
