package booking

import "roomapp/models"

// allowedTransitions is the booking lifecycle table. A status-update request
// is honored only when (current, requested) appears here; anything else is an
// illegal transition. Terminal states have no entry, so completed, cancelled
// and rejected bookings reject every further update.
var allowedTransitions = map[string]map[string]bool{
	models.StatusPending: {
		models.StatusAccepted:  true,
		models.StatusRejected:  true,
		models.StatusCancelled: true,
	},
	models.StatusAccepted: {
		models.StatusInProgress: true,
		models.StatusCancelled:  true,
	},
	models.StatusInProgress: {
		models.StatusCompleted: true,
	},
}

// validStatuses is the closed set of status values the API accepts at all.
var validStatuses = map[string]bool{
	models.StatusPending:    true,
	models.StatusAccepted:   true,
	models.StatusInProgress: true,
	models.StatusRejected:   true,
	models.StatusCompleted:  true,
	models.StatusCancelled:  true,
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// CanTransition reports whether the lifecycle table permits from -> to.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}
