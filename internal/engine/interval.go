package engine

import (
	"fmt"
	"time"
)

// EffectiveInterval derives the concrete [start, end) instants of a booking
// on its own calendar date. A missing end time gets the default duration
// added to the start. The returned error wraps ErrInvalidInterval whenever
// a field fails to parse or the end does not fall strictly after the start.
func (e *Engine) EffectiveInterval(b Booking) (Interval, error) {
	day, err := time.ParseInLocation(DateLayout, b.Date, time.Local)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: bad date %q", ErrInvalidInterval, b.Date)
	}

	start, err := atTimeOfDay(day, b.Start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: bad start time %q", ErrInvalidInterval, b.Start)
	}

	var end time.Time
	if b.End == "" {
		end = start.Add(e.defaultDuration)
	} else {
		end, err = atTimeOfDay(day, b.End)
		if err != nil {
			return Interval{}, fmt.Errorf("%w: bad end time %q", ErrInvalidInterval, b.End)
		}
	}

	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: %s is not after %s", ErrInvalidInterval, end.Format(TimeLayout), start.Format(TimeLayout))
	}

	return Interval{Start: start, End: end}, nil
}

func atTimeOfDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
