package domain

import "time"

// User is an account that can sign in. Only admins may edit listings.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
