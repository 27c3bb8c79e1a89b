package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// BookFilter narrows catalog scans. Author/Genre are independent
// substring filters combined with AND; Query matches title OR author.
// All matching is case-insensitive and treats the input as literal
// text, never as a pattern.
type BookFilter struct {
	Author string
	Genre  string
	Query  string
}

type BookRepository interface {
	// Create persists a new book. A duplicate non-null ISBN surfaces
	// as ErrISBNExists.
	Create(ctx context.Context, book *model.Book) error

	// GetByID gets book by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Exists reports whether a book id resolves
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List retrieves one page of books matching the filter, newest first
	List(ctx context.Context, filter BookFilter, offset, limit int) ([]model.Book, error)

	// Count counts all books matching the filter, independent of paging
	Count(ctx context.Context, filter BookFilter) (int, error)
}
