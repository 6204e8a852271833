package model

import "time"

// LessonLock is an advisory lock keyed by classroom and date. It prevents two
// concurrent writers from running the conflict check for the same slot at the
// same time.
type LessonLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
