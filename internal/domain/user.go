package domain

import "time"

// User is the domain model for accounts administered through the API.
// PasswordHash always holds a bcrypt digest.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
