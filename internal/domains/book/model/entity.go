package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalog entry. Books are created once and never
// mutated or deleted; AddedBy is fixed at creation. No rating fields
// live here: the aggregate is derived at query time from the reviews.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   *string   `json:"description"`
	PublishedYear *int      `json:"published_year"`
	ISBN          *string   `json:"isbn"` // sparse-unique: absent values never collide
	AddedByID     uuid.UUID `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
