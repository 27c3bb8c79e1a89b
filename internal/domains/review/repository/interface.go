package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	// Create persists a new review. The storage layer enforces the
	// one-review-per-user-per-book constraint; a duplicate surfaces
	// as ErrAlreadyReviewed.
	Create(ctx context.Context, review *model.Review) error

	// GetByID gets review by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// Update persists rating/comment changes
	Update(ctx context.Context, review *model.Review) error

	// Delete deletes review
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByBook lists one page of a book's reviews, newest first
	ListByBook(ctx context.Context, bookID uuid.UUID, offset, limit int) ([]model.Review, error)

	// CountByBook counts all reviews for a book
	CountByBook(ctx context.Context, bookID uuid.UUID) (int, error)

	// Summary aggregates count and mean rating over the entire review
	// set of one book.
	Summary(ctx context.Context, bookID uuid.UUID) (model.RatingSummary, error)

	// Summaries batches Summary over many books in one grouped query.
	// Books without reviews are absent from the result; callers treat
	// absence as the zero aggregate.
	Summaries(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]model.RatingSummary, error)
}
