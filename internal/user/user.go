package user

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a user is not found.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when the username is taken.
	ErrAlreadyExists = errors.New("user already exists")
)

// User represents a registered user. No password is stored: the login flow
// checks the single configured credential value instead.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
