package domain

import "time"

// Client represents a customer. Clients are deduplicated by email:
// a repeat booking with a known email reuses the existing row.
type Client struct {
	ID        int64
	Email     string // unique, normalized to lower case
	FirstName string
	LastName  string
	Phone     string

	TowingVehicle *string
	Comments      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
