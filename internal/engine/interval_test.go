package engine

import (
	"errors"
	"testing"
	"time"
)

func TestEffectiveIntervalExplicitEnd(t *testing.T) {
	e := New(60 * time.Minute)

	iv, err := e.EffectiveInterval(Booking{Date: "2026-03-02", Start: "09:00", End: "10:30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := iv.Start.Format(TimeLayout); got != "09:00" {
		t.Errorf("start = %s, want 09:00", got)
	}
	if got := iv.End.Format(TimeLayout); got != "10:30" {
		t.Errorf("end = %s, want 10:30", got)
	}
	if iv.Start.Day() != iv.End.Day() {
		t.Error("start and end should share the calendar date")
	}
}

func TestEffectiveIntervalDefaultDuration(t *testing.T) {
	e := New(60 * time.Minute)

	iv, err := e.EffectiveInterval(Booking{Date: "2026-03-02", Start: "14:15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := iv.End.Sub(iv.Start); got != 60*time.Minute {
		t.Errorf("duration = %s, want 1h", got)
	}
	if got := iv.End.Format(TimeLayout); got != "15:15" {
		t.Errorf("end = %s, want 15:15", got)
	}
}

func TestEffectiveIntervalRejectsEndBeforeStart(t *testing.T) {
	e := New(60 * time.Minute)

	tests := []struct {
		name    string
		booking Booking
	}{
		{"end before start", Booking{Date: "2026-03-02", Start: "11:00", End: "10:00"}},
		{"end equals start", Booking{Date: "2026-03-02", Start: "10:00", End: "10:00"}},
		{"bad date", Booking{Date: "not-a-date", Start: "10:00", End: "11:00"}},
		{"bad start", Booking{Date: "2026-03-02", Start: "25:00", End: "11:00"}},
		{"bad end", Booking{Date: "2026-03-02", Start: "10:00", End: "oops"}},
		{"missing start", Booking{Date: "2026-03-02"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.EffectiveInterval(tt.booking)
			if !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("err = %v, want ErrInvalidInterval", err)
			}
		})
	}
}

func TestNewClampsNonPositiveDuration(t *testing.T) {
	if got := New(0).DefaultDuration(); got != time.Hour {
		t.Errorf("default duration = %s, want 1h", got)
	}
	if got := New(-time.Minute).DefaultDuration(); got != time.Hour {
		t.Errorf("default duration = %s, want 1h", got)
	}
}
