package service

import (
	"context"

	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/review/model"
	usermodel "bookreview-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	// CreateReview records principalID's review of a book. Each user
	// reviews a given book at most once; a second attempt returns
	// ErrAlreadyReviewed.
	CreateReview(ctx context.Context, principalID, bookID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error)

	// UpdateReview applies a merge-patch to one of principalID's own
	// reviews. Non-owners get ErrNotOwner.
	UpdateReview(ctx context.Context, principalID, reviewID uuid.UUID, req model.UpdateReviewRequest) (*model.ReviewResponse, error)

	// DeleteReview removes one of principalID's own reviews.
	DeleteReview(ctx context.Context, principalID, reviewID uuid.UUID) error
}

// BookSource is the slice of the book domain review mutations need:
// existence checks on create and title lookup on update.
type BookSource interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error)
}

// IdentitySource resolves principal ids to public identities.
type IdentitySource interface {
	GetPublicByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]usermodel.PublicUser, error)
}
