package engine

// AvailableResources returns the classrooms with no booking overlapping the
// candidate's interval on the candidate's date, preserving the order of the
// supplied resource slice. The candidate's ResourceID is ignored; SelfID
// excludes an in-progress edit's own prior reservation from the check.
//
// An invalid candidate interval fails with ErrInvalidInterval rather than
// reporting every classroom free or busy.
func (e *Engine) AvailableResources(cand Candidate, resources []Resource, bookings []Booking) ([]Resource, error) {
	candIv, err := e.EffectiveInterval(cand.Booking)
	if err != nil {
		return nil, err
	}

	available := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if e.resourceFree(candIv, r.ID, cand.Date, cand.SelfID, bookings) {
			available = append(available, r)
		}
	}
	return available, nil
}

func (e *Engine) resourceFree(iv Interval, resourceID, date, excludeID string, bookings []Booking) bool {
	for _, b := range bookings {
		if b.ResourceID != resourceID || b.Date != date {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		biv, err := e.EffectiveInterval(b)
		if err != nil {
			continue
		}
		if Overlaps(iv, biv) {
			return false
		}
	}
	return true
}
