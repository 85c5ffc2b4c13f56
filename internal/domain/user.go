package domain

import "time"

// User is the domain entity for a user account. Email is the login key.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
