package booking

import "errors"

var (
	// ErrMissingFields indicates a create request without the required
	// stylistUid, serviceId or dateTime.
	ErrMissingFields = errors.New("missing required fields: stylistUid, serviceId, dateTime")
	// ErrInvalidStatus indicates a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrIllegalTransition indicates the lifecycle table has no edge from the
	// booking's current status to the requested one.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrNotAuthorized indicates the actor is not a recognized party to the
	// booking, or lacks the role the requested event demands.
	ErrNotAuthorized = errors.New("not authorized for this booking")
	// ErrAcceptConflict indicates another staff member's accept landed first.
	ErrAcceptConflict = errors.New("booking already accepted by another staff member")
)
