package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	usermodel "bookreview-backend/internal/domains/user/model"
)

// ServiceInterface is the catalog query and mutation surface for books.
type ServiceInterface interface {
	// ListBooks lists one page of the catalog with rating aggregates
	// attached; the pagination descriptor covers the filtered total.
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)

	// GetBookDetail returns a book with its full-set rating aggregate
	// and an independently paginated review list.
	GetBookDetail(ctx context.Context, bookID uuid.UUID, reviewPage, reviewLimit int) (*model.BookDetailResponse, error)

	// SearchBooks matches the query as a literal, case-insensitive
	// substring of title or author.
	SearchBooks(ctx context.Context, req model.SearchBooksRequest) (*model.SearchBooksResponse, error)

	// CreateBook adds a book to the catalog on behalf of a principal.
	CreateBook(ctx context.Context, principalID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error)
}

// RatingSource supplies the derived rating aggregate. Satisfied by the
// review repository; declared here so the catalog does not depend on
// the review domain's storage.
type RatingSource interface {
	Summary(ctx context.Context, bookID uuid.UUID) (reviewmodel.RatingSummary, error)
	Summaries(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]reviewmodel.RatingSummary, error)
}

// ReviewSource supplies the paged review list for book detail.
type ReviewSource interface {
	ListByBook(ctx context.Context, bookID uuid.UUID, offset, limit int) ([]reviewmodel.Review, error)
	CountByBook(ctx context.Context, bookID uuid.UUID) (int, error)
}

// IdentitySource resolves principal ids to public identities.
type IdentitySource interface {
	GetPublicByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]usermodel.PublicUser, error)
}
