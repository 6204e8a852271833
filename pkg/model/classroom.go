package model

import "time"

// Classroom is a bookable resource. Code is a short normalized identifier
// shown on the weekly grid headers (for example "AULA-B-12").
type Classroom struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Code          string    `json:"code" bson:"code" validate:"required,min=1,max=30"`
	Capacity      int       `json:"capacity,omitempty" bson:"capacity" validate:"omitempty,min=1,max=1000"`
	HasProjector  bool      `json:"has_projector" bson:"has_projector"`
	HasWhiteboard bool      `json:"has_whiteboard" bson:"has_whiteboard"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ClassroomUpdate struct {
	Name          string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Code          string `json:"code,omitempty" validate:"omitempty,min=1,max=30"`
	Capacity      *int   `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	HasProjector  *bool  `json:"has_projector,omitempty"`
	HasWhiteboard *bool  `json:"has_whiteboard,omitempty"`
	Active        *bool  `json:"active,omitempty"`
}
