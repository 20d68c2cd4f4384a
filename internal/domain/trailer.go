package domain

import "time"

// Trailer represents a rentable trailer
type Trailer struct {
	ID         int64
	Name       string // display name, also matched against imported event titles
	RatePerDay float64
	Active     bool
	ColorHex   *string // calendar display color
	PhotoURLs  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
