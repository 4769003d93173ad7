// Package projector derives the client-facing view state from the live
// booking feed. It is consumed by the mobile client: one subscription per
// signed-in identity, with the active booking and (for staff) the pending
// queue recomputed from scratch on every delivery.
package projector

import "roomapp/models"

// ViewState is what a client renders for one identity at one moment.
type ViewState struct {
	// Active is the single surfaced non-terminal booking for the identity,
	// or nil when there is none.
	Active *models.Booking
	// Queue holds every pending booking, regardless of assignment. Populated
	// for staff only.
	Queue []models.Booking
}

// projectionTerminal is the set of statuses that clear the active projection.
func projectionTerminal(status string) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// Project recomputes the view state for (uid, role) from the full booking
// set. When more than one booking matches the active predicate (nothing stops
// a customer from holding several concurrent requests), the most recently
// updated one is surfaced.
func Project(bookings []models.Booking, uid, role string) ViewState {
	var view ViewState

	for i := range bookings {
		b := bookings[i]

		if role == models.RoleStaff {
			if b.Status == models.StatusPending {
				view.Queue = append(view.Queue, b)
			}
			if b.AssignedStaffID == uid && !projectionTerminal(b.Status) {
				view.Active = pickLatest(view.Active, &bookings[i])
			}
			continue
		}

		if b.ClientUID == uid && !projectionTerminal(b.Status) {
			view.Active = pickLatest(view.Active, &bookings[i])
		}
	}

	return view
}

func pickLatest(current, candidate *models.Booking) *models.Booking {
	if current == nil || candidate.UpdatedAt.After(current.UpdatedAt) {
		return candidate
	}
	return current
}
