package engine

import (
	"testing"
	"time"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	e := New(60 * time.Minute)
	iv, err := e.EffectiveInterval(Booking{Date: "2026-03-02", Start: start, End: end})
	if err != nil {
		t.Fatalf("interval %s-%s: %v", start, end, err)
	}
	return iv
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		aStart, aEnd   string
		bStart, bEnd   string
		want           bool
	}{
		{"partial overlap", "09:00", "10:30", "10:00", "11:00", true},
		{"containment", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"touching boundary", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"one minute shared", "09:00", "10:01", "10:00", "11:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustInterval(t, tt.aStart, tt.aEnd)
			b := mustInterval(t, tt.bStart, tt.bEnd)
			if got := Overlaps(a, b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if Overlaps(a, b) != Overlaps(b, a) {
				t.Error("Overlaps is not commutative")
			}
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	a := mustInterval(t, "09:00", "10:00")
	if !Overlaps(a, a) {
		t.Error("an interval must overlap itself; conflict checks rely on id exclusion, not interval inequality")
	}
}
