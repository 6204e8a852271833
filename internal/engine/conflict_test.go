package engine

import (
	"errors"
	"testing"
	"time"
)

var testResources = []Resource{
	{ID: "r1", Name: "Aula Magna"},
	{ID: "r2", Name: "Lab B-12"},
}

func TestConflictsDetectsOverlap(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "1", ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:30"},
	}
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "10:00", End: "11:00"}}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("conflicts = %v, want the 09:00-10:30 booking", got)
	}
}

func TestConflictsIgnoresTouchingBoundary(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "1", ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:00"},
	}
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "10:00", End: "11:00"}}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("conflicts = %v, want none for back-to-back bookings", got)
	}
}

func TestConflictsFiltersResourceAndDate(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "1", ResourceID: "r2", Date: "2026-03-02", Start: "09:00", End: "11:00"},
		{ID: "2", ResourceID: "r1", Date: "2026-03-03", Start: "09:00", End: "11:00"},
		{ID: "3", ResourceID: "r1", Date: "2026-03-02", Start: "09:30", End: "10:30"},
	}
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:00"}}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("conflicts = %v, want only the same-room same-date booking", got)
	}
}

func TestConflictsExcludesSelfOnEdit(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "5", ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:00"},
	}
	// Re-validating booking 5 with a shifted time still overlapping its own
	// stored record must not conflict with itself.
	cand := Candidate{
		Booking: Booking{ID: "5", ResourceID: "r1", Date: "2026-03-02", Start: "09:30", End: "10:30"},
		SelfID:  "5",
	}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("conflicts = %v, want none when editing in place", got)
	}
}

func TestConflictsCompletedRecordIsNeverSkipped(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "5", ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:00", Completed: true},
	}
	cand := Candidate{
		Booking: Booking{ID: "5", ResourceID: "r1", Date: "2026-03-02", Start: "09:30", End: "10:30"},
		SelfID:  "5",
	}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatal("a completed booking must remain an obstacle even for its own id")
	}
}

func TestConflictsPreservesInputOrder(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "b", ResourceID: "r1", Date: "2026-03-02", Start: "10:00", End: "11:00"},
		{ID: "a", ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "10:30"},
	}
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "09:00", End: "12:00"}}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("conflicts = %v, want input order [b a]", got)
	}
}

func TestConflictsUnknownResource(t *testing.T) {
	e := New(60 * time.Minute)
	cand := Candidate{Booking: Booking{ResourceID: "ghost", Date: "2026-03-02", Start: "09:00", End: "10:00"}}

	if _, err := e.Conflicts(cand, testResources, nil); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("err = %v, want ErrUnknownResource", err)
	}

	cand.ResourceID = ""
	if _, err := e.Conflicts(cand, nil, nil); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("err = %v, want ErrUnknownResource for empty resource id", err)
	}
}

func TestConflictsInvalidCandidateInterval(t *testing.T) {
	e := New(60 * time.Minute)
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "11:00", End: "10:00"}}

	if _, err := e.Conflicts(cand, testResources, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("err = %v, want ErrInvalidInterval", err)
	}
}

func TestConflictsAppliesDefaultDurationToLegacyBookings(t *testing.T) {
	e := New(60 * time.Minute)
	existing := []Booking{
		{ID: "1", ResourceID: "r1", Date: "2026-03-02", Start: "09:00"}, // no end, effectively 09:00-10:00
	}
	cand := Candidate{Booking: Booking{ResourceID: "r1", Date: "2026-03-02", Start: "09:30", End: "11:00"}}

	got, err := e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatal("legacy booking without end time should conflict via default duration")
	}

	cand.Start, cand.End = "10:00", "11:00"
	got, err = e.Conflicts(cand, testResources, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("candidate starting at the derived end should not conflict")
	}
}
