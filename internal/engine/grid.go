package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// HourRange is an inclusive range of grid hours, e.g. {8, 19}.
type HourRange struct {
	First int
	Last  int
}

// Contains reports whether hour falls inside the range.
func (h HourRange) Contains(hour int) bool {
	return hour >= h.First && hour <= h.Last
}

// CellKey addresses one weekly grid cell by calendar date and hour of day.
type CellKey struct {
	Date string
	Hour int
}

// Cell holds the bookings anchored at a grid cell plus a flag marking the
// cell as covered by an earlier booking still in progress. A cell with no
// anchored bookings and Continuation false is free.
type Cell struct {
	Anchored     []Booking
	Continuation bool
}

// SecondaryKey orders bookings anchored at the same cell after the start
// time comparison. Typically the course or subject name.
type SecondaryKey func(Booking) string

// WeekGrid is the transient projection of a booking set onto one school
// week. It is recomputed on every call and holds no independent state.
type WeekGrid struct {
	Days  []string // the five weekday dates, Monday first
	Hours HourRange
	cells map[CellKey]Cell
}

// WeekGrid buckets the bookings that fall inside the week of ref into
// (date, hour) cells over the given hour range. The window is Monday through
// Friday of ref's week; a Sunday reference selects the week starting the
// next day. Bookings anchored at the same cell are ordered by start time,
// then by secondary (may be nil).
func (e *Engine) WeekGrid(ref time.Time, hours HourRange, bookings []Booking, secondary SecondaryKey) (*WeekGrid, error) {
	if hours.First < 0 || hours.Last > 23 || hours.Last < hours.First {
		return nil, fmt.Errorf("%w: bad hour range [%d..%d]", ErrInvalidInterval, hours.First, hours.Last)
	}

	monday := MondayOf(ref)
	grid := &WeekGrid{
		Days:  make([]string, 0, 5),
		Hours: hours,
		cells: make(map[CellKey]Cell),
	}
	inWeek := make(map[string]bool, 5)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i).Format(DateLayout)
		grid.Days = append(grid.Days, d)
		inWeek[d] = true
	}

	for _, b := range bookings {
		if !inWeek[b.Date] {
			continue
		}
		iv, err := e.EffectiveInterval(b)
		if err != nil {
			continue
		}

		startHour := iv.Start.Hour()
		span := hourSpan(iv)

		if hours.Contains(startHour) {
			key := CellKey{Date: b.Date, Hour: startHour}
			cell := grid.cells[key]
			cell.Anchored = append(cell.Anchored, b)
			grid.cells[key] = cell
		}
		for h := startHour + 1; h < startHour+span; h++ {
			if !hours.Contains(h) {
				continue
			}
			key := CellKey{Date: b.Date, Hour: h}
			cell := grid.cells[key]
			cell.Continuation = true
			grid.cells[key] = cell
		}
	}

	for key, cell := range grid.cells {
		if len(cell.Anchored) < 2 {
			continue
		}
		sort.SliceStable(cell.Anchored, func(i, j int) bool {
			a, b := cell.Anchored[i], cell.Anchored[j]
			if a.Start != b.Start {
				return a.Start < b.Start
			}
			if secondary != nil {
				return secondary(a) < secondary(b)
			}
			return false
		})
		grid.cells[key] = cell
	}

	return grid, nil
}

// Cell returns the cell at (date, hour); the zero Cell means free.
func (g *WeekGrid) Cell(date string, hour int) Cell {
	return g.cells[CellKey{Date: date, Hour: hour}]
}

// IsContinuation reports whether the cell is covered by a booking anchored
// at an earlier hour. Such cells must not accept a new booking anchor.
func (g *WeekGrid) IsContinuation(date string, hour int) bool {
	return g.cells[CellKey{Date: date, Hour: hour}].Continuation
}

// IsFree reports whether nothing is anchored at or spans the cell.
func (g *WeekGrid) IsFree(date string, hour int) bool {
	cell := g.cells[CellKey{Date: date, Hour: hour}]
	return len(cell.Anchored) == 0 && !cell.Continuation
}

// MondayOf returns midnight of the Monday of t's school week. Sundays map
// forward to the next Monday, matching a Monday-first week view.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, 1-int(day.Weekday()))
}

// hourSpan is the number of hourly cells a booking visually covers,
// ceil of its duration in hours, never less than one.
func hourSpan(iv Interval) int {
	hours := int(math.Ceil(iv.End.Sub(iv.Start).Hours()))
	if hours < 1 {
		return 1
	}
	return hours
}
