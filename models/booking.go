package models

import "time"

// Booking statuses. A booking moves pending -> accepted -> in_progress ->
// completed, with rejected and cancelled as alternate terminal branches.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusRejected   = "rejected"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Payment statuses, an axis independent of the booking status.
const (
	PaymentRequiresPayment = "requires_payment"
	PaymentPaid            = "paid"
	PaymentFailed          = "failed"
	PaymentRefunded        = "refunded"
)

// Booking is one customer-to-staff service request and its lifecycle state.
// The descriptive payload is immutable after creation; only status,
// assigned_staff_id and the payment fields are ever mutated.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ClientUID       string    `bson:"client_uid" json:"clientUid"`
	StylistUID      string    `bson:"stylist_uid" json:"stylistUid"`
	AssignedStaffID string    `bson:"assigned_staff_id,omitempty" json:"assignedStaffId,omitempty"`
	ServiceID       string    `bson:"service_id" json:"serviceId"`
	ServiceName     string    `bson:"service_name" json:"serviceName"`
	DateTime        time.Time `bson:"date_time" json:"dateTime"`
	Price           float64   `bson:"price" json:"price"`
	ClientNotes     string    `bson:"client_notes" json:"clientNotes"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	Status          string    `bson:"status" json:"status"`

	PaymentStatus        string     `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	PaymentIntentID      string     `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	PaymentFailureReason string     `bson:"payment_failure_reason,omitempty" json:"paymentFailureReason,omitempty"`
	RefundedAt           *time.Time `bson:"refunded_at,omitempty" json:"refundedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsParty reports whether uid is a recognized party to the booking: the
// client, the candidate stylist named at creation, or the staff member bound
// by an accept.
func (b *Booking) IsParty(uid string) bool {
	if uid == "" {
		return false
	}
	return uid == b.ClientUID || uid == b.StylistUID || uid == b.AssignedStaffID
}

// IsTerminal reports whether status has no outgoing transitions.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}
