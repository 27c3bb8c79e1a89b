package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	usermodel "bookreview-backend/internal/domains/user/model"
)

// CreateReviewRequest request to review a book
type CreateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Length(0, 1000)),
	)
}

// UpdateReviewRequest is a merge-patch: only fields present in the body
// are applied, absent fields keep their prior value.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Length(0, 1000)),
	)
}

// ReviewResponse review with its author identity attached
type ReviewResponse struct {
	ID        uuid.UUID            `json:"id"`
	BookID    uuid.UUID            `json:"book_id"`
	User      usermodel.PublicUser `json:"user"`
	Rating    int                  `json:"rating"`
	Comment   *string              `json:"comment,omitempty"`
	BookTitle string               `json:"book_title,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// MutationResponse wraps a created/updated review with a confirmation
type MutationResponse struct {
	Message string         `json:"message"`
	Review  ReviewResponse `json:"review"`
}

// DeleteResponse acknowledges a deletion, no body beyond the message
type DeleteResponse struct {
	Message string `json:"message"`
}

// ToResponse attaches the author identity to a review
func (rv *Review) ToResponse(user usermodel.PublicUser) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		BookID:    rv.BookID,
		User:      user,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}
