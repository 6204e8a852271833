package engine

// Conflicts returns every booking on the candidate's classroom and date whose
// effective interval overlaps the candidate's, preserving the input order.
// An empty result means the candidate is schedulable as-is.
//
// resources, when non-nil, is the known classroom set: a candidate whose
// ResourceID is absent from it fails with ErrUnknownResource. Pass nil to
// skip that check when the caller has already resolved the classroom.
//
// The candidate's own record is skipped by SelfID so an edit does not
// collide with itself. A completed record is never skipped this way; callers
// must not present completed bookings as edit targets in the first place.
//
// Stored bookings with a malformed interval are skipped; they cannot have
// passed validation on write.
func (e *Engine) Conflicts(cand Candidate, resources []Resource, bookings []Booking) ([]Booking, error) {
	if cand.ResourceID == "" {
		return nil, ErrUnknownResource
	}
	if resources != nil && !containsResource(resources, cand.ResourceID) {
		return nil, ErrUnknownResource
	}

	candIv, err := e.EffectiveInterval(cand.Booking)
	if err != nil {
		return nil, err
	}

	var conflicts []Booking
	for _, b := range bookings {
		if b.ResourceID != cand.ResourceID || b.Date != cand.Date {
			continue
		}
		if cand.SelfID != "" && b.ID == cand.SelfID && !b.Completed {
			continue
		}
		iv, err := e.EffectiveInterval(b)
		if err != nil {
			continue
		}
		if Overlaps(candIv, iv) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

func containsResource(resources []Resource, id string) bool {
	for _, r := range resources {
		if r.ID == id {
			return true
		}
	}
	return false
}
