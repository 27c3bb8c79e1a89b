package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the minimal identity attached to books and reviews.
// Never carries credentials.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Public strips a user down to its attachable identity
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
	}
}
