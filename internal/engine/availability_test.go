package engine

import (
	"errors"
	"testing"
	"time"
)

func TestAvailableResourcesReturnsFreeRoomsInOrder(t *testing.T) {
	e := New(60 * time.Minute)
	resources := []Resource{
		{ID: "A", Name: "Aula A"},
		{ID: "B", Name: "Aula B"},
		{ID: "C", Name: "Aula C"},
	}
	bookings := []Booking{
		{ID: "1", ResourceID: "A", Date: "2026-03-02", Start: "09:30", End: "10:30"},
		{ID: "2", ResourceID: "B", Date: "2026-03-02", Start: "11:00", End: "12:00"},
		{ID: "3", ResourceID: "C", Date: "2026-03-03", Start: "09:00", End: "10:00"},
	}
	cand := Candidate{Booking: Booking{Date: "2026-03-02", Start: "09:00", End: "10:00"}}

	got, err := e.AvailableResources(cand, resources, bookings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "B" || got[1].ID != "C" {
		t.Fatalf("available = %v, want [B C] in input order", got)
	}
}

func TestAvailableResourcesExcludesOwnReservation(t *testing.T) {
	e := New(60 * time.Minute)
	resources := []Resource{{ID: "A", Name: "Aula A"}}
	bookings := []Booking{
		{ID: "7", ResourceID: "A", Date: "2026-03-02", Start: "09:00", End: "10:00"},
	}
	cand := Candidate{
		Booking: Booking{Date: "2026-03-02", Start: "09:00", End: "10:00"},
		SelfID:  "7",
	}

	got, err := e.AvailableResources(cand, resources, bookings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatal("room A should be free once the edit's own reservation is excluded")
	}
}

func TestAvailableResourcesInvalidInterval(t *testing.T) {
	e := New(60 * time.Minute)
	cand := Candidate{Booking: Booking{Date: "2026-03-02", Start: "11:00", End: "10:00"}}

	if _, err := e.AvailableResources(cand, []Resource{{ID: "A"}}, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("err = %v, want ErrInvalidInterval, not an all-free or all-busy answer", err)
	}
}

func TestAvailableResourcesNoBookings(t *testing.T) {
	e := New(60 * time.Minute)
	resources := []Resource{{ID: "A"}, {ID: "B"}}
	cand := Candidate{Booking: Booking{Date: "2026-03-02", Start: "09:00"}}

	got, err := e.AvailableResources(cand, resources, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("available = %v, want every room when nothing is booked", got)
	}
}
