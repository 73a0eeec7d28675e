package domain

// FindConflicts returns every active reservation whose window overlaps
// the candidate window, using half-open semantics: back-to-back
// reservations do not conflict. excludeID lets an in-place update
// ignore the reservation being modified (0 excludes nothing).
//
// Pure and deterministic; callers pass the reservations of a single
// (resource, date), so the linear scan is bounded by the bookings of
// one resource on one day.
func FindConflicts(window TimeWindow, reservations []*Reservation, excludeID int64) []*Reservation {
	conflicts := make([]*Reservation, 0)

	for _, r := range reservations {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if window.Overlaps(r.Window) {
			conflicts = append(conflicts, r)
		}
	}

	return conflicts
}
