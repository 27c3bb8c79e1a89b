package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a single user's review of a book.
// At most one review exists per (book, user) pair; the pair is unique
// at the storage layer, not just checked at write time.
type Review struct {
	ID     uuid.UUID `json:"id"`
	BookID uuid.UUID `json:"book_id"`
	UserID uuid.UUID `json:"user_id"`

	Rating  int     `json:"rating"` // 1-5
	Comment *string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
