package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	reviewmodel "bookreview-backend/internal/domains/review/model"
	usermodel "bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/shared/pagination"
)

// CreateBookRequest request to add a book to the catalog
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	Description   *string `json:"description"`
	PublishedYear *int    `json:"published_year"`
	ISBN          *string `json:"isbn"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Genre, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.PublishedYear, validation.Min(1000), validation.Max(time.Now().Year())),
	)
}

// ListBooksRequest query parameters for the catalog listing.
// Author and genre are case-insensitive substring filters, combined
// with AND when both are present.
type ListBooksRequest struct {
	Author string
	Genre  string
	Page   int
	Limit  int
}

// SearchBooksRequest free-text search over title OR author
type SearchBooksRequest struct {
	Query string
	Page  int
	Limit int
}

func (r SearchBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required.Error("search query is required")),
	)
}

// BookResponse book with creator identity and the derived rating
// aggregate attached
type BookResponse struct {
	ID            uuid.UUID            `json:"id"`
	Title         string               `json:"title"`
	Author        string               `json:"author"`
	Genre         string               `json:"genre"`
	Description   *string              `json:"description,omitempty"`
	PublishedYear *int                 `json:"published_year,omitempty"`
	ISBN          *string              `json:"isbn,omitempty"`
	AddedBy       usermodel.PublicUser `json:"added_by"`
	AverageRating float64              `json:"average_rating"`
	ReviewCount   int                  `json:"review_count"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ListBooksResponse response for the catalog listing
type ListBooksResponse struct {
	Books      []BookResponse  `json:"books"`
	Pagination pagination.Meta `json:"pagination"`
}

// BookDetailResponse book detail with an independently paginated
// review list. The aggregate on the book covers the full review set,
// not just the page shown.
type BookDetailResponse struct {
	Book             BookResponse                 `json:"book"`
	Reviews          []reviewmodel.ReviewResponse `json:"reviews"`
	ReviewPagination pagination.Meta              `json:"reviewPagination"`
}

// SearchBooksResponse echoes the query back alongside the results
type SearchBooksResponse struct {
	Query      string          `json:"query"`
	Books      []BookResponse  `json:"books"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateBookResponse response after adding a book
type CreateBookResponse struct {
	Message string       `json:"message"`
	Book    BookResponse `json:"book"`
}

// ToResponse attaches the creator identity and rating aggregate
func (b *Book) ToResponse(addedBy usermodel.PublicUser, summary reviewmodel.RatingSummary) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		ISBN:          b.ISBN,
		AddedBy:       addedBy,
		AverageRating: summary.AverageRating,
		ReviewCount:   summary.ReviewCount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
