package domain

import "time"

// Gym hosts competitions.
type Gym struct {
	ID           string
	Name         string
	URL          string
	Location     string
	GoogleMapURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
