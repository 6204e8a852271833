// Package engine decides whether lessons collide, which classrooms are free
// for a requested slot, and how lessons index into a weekly hour grid. It is
// computation only: no I/O, no retained state, safe for concurrent use.
package engine

import "time"

// DateLayout is the calendar-date wire format used across the engine.
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day wire format used across the engine.
const TimeLayout = "15:04"

// Resource is an exclusively bookable classroom as the engine sees it.
type Resource struct {
	ID   string
	Name string
}

// Booking is one lesson's occupation of one classroom on one calendar date.
// End may be empty; the engine then applies its default duration. Completed
// bookings are immutable obstacles: they still block other candidates but
// are never skipped as "the booking being edited".
type Booking struct {
	ID         string
	ResourceID string
	Date       string // DateLayout
	Start      string // TimeLayout
	End        string // TimeLayout, optional
	Label      string
	Completed  bool
}

// Candidate is a booking under validation. SelfID carries the persisted id
// of the booking being edited so the conflict check can skip its own record;
// it is empty for a brand-new booking.
type Candidate struct {
	Booking
	SelfID string
}

// Interval is the effective [Start, End) instant pair of a booking.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Engine evaluates conflicts, availability and grid placement against a
// snapshot of the booking set. The zero value is unusable; construct via New.
type Engine struct {
	defaultDuration time.Duration
}

// New returns an engine that substitutes defaultDuration for bookings
// without an explicit end time. Non-positive durations fall back to one hour.
func New(defaultDuration time.Duration) *Engine {
	if defaultDuration <= 0 {
		defaultDuration = time.Hour
	}
	return &Engine{defaultDuration: defaultDuration}
}

// DefaultDuration reports the configured fallback duration.
func (e *Engine) DefaultDuration() time.Duration {
	return e.defaultDuration
}
