package models

import "time"

// User roles. Set at registration; there is no role-migration path.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

// UserProfile represents a customer or staff member. The document ID equals
// the Firebase UID. DeviceTokens is maintained with set semantics so
// concurrent device registrations never clobber each other.
type UserProfile struct {
	UID          string    `bson:"uid" json:"uid"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	Bio          string    `bson:"bio" json:"bio"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Location     string    `bson:"location,omitempty" json:"location,omitempty"`
	DeviceTokens []string  `bson:"device_tokens,omitempty" json:"deviceTokens,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields for a partial update.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
}
