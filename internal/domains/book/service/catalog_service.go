package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	usermodel "bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/shared/pagination"
)

// Pagination defaults and caps. Upstream validation constrains the
// same ranges; the Window call re-clamps anything that slips through.
const (
	DefaultBookLimit   = 10
	MaxBookLimit       = 100
	DefaultReviewLimit = 5
	MaxReviewLimit     = 50
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

type catalogService struct {
	bookRepo repository.BookRepository
	ratings  RatingSource
	reviews  ReviewSource
	identity IdentitySource
}

func NewCatalogService(
	bookRepo repository.BookRepository,
	ratings RatingSource,
	reviews ReviewSource,
	identity IdentitySource,
) ServiceInterface {
	return &catalogService{
		bookRepo: bookRepo,
		ratings:  ratings,
		reviews:  reviews,
		identity: identity,
	}
}

func (s *catalogService) ListBooks(
	ctx context.Context,
	req model.ListBooksRequest,
) (*model.ListBooksResponse, error) {
	filter := repository.BookFilter{
		Author: req.Author,
		Genre:  req.Genre,
	}

	books, meta, err := s.pageBooks(ctx, filter, req.Page, req.Limit, DefaultBookLimit, MaxBookLimit)
	if err != nil {
		return nil, err
	}

	return &model.ListBooksResponse{
		Books:      books,
		Pagination: meta,
	}, nil
}

func (s *catalogService) SearchBooks(
	ctx context.Context,
	req model.SearchBooksRequest,
) (*model.SearchBooksResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := repository.BookFilter{Query: req.Query}

	books, meta, err := s.pageBooks(ctx, filter, req.Page, req.Limit, DefaultSearchLimit, MaxSearchLimit)
	if err != nil {
		return nil, err
	}

	return &model.SearchBooksResponse{
		Query:      req.Query,
		Books:      books,
		Pagination: meta,
	}, nil
}

// pageBooks is the shared list/search path: fetch the page and the
// filtered total concurrently, then attach aggregates and identities.
func (s *catalogService) pageBooks(
	ctx context.Context,
	filter repository.BookFilter,
	page, limit, def, max int,
) ([]model.BookResponse, pagination.Meta, error) {
	offset, window := pagination.Window(page, limit, def, max)

	var books []model.Book
	var total int

	// The page and the count read independent slices of the same
	// snapshot; ordering between them is irrelevant.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.bookRepo.List(gctx, filter, offset, window)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.bookRepo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("failed to page books: %w", err)
	}

	responses, err := s.attach(ctx, books)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if page < 1 {
		page = 1
	}
	return responses, pagination.Describe(page, window, total), nil
}

// attach joins rating aggregates and creator identities onto a page of
// books. Aggregation is batched into one grouped query; a book absent
// from the result simply has no reviews yet. Any failure fails the
// whole page rather than returning a zero that looks computed.
func (s *catalogService) attach(ctx context.Context, books []model.Book) ([]model.BookResponse, error) {
	if len(books) == 0 {
		return []model.BookResponse{}, nil
	}

	bookIDs := make([]uuid.UUID, len(books))
	creatorIDs := make([]uuid.UUID, len(books))
	for i, b := range books {
		bookIDs[i] = b.ID
		creatorIDs[i] = b.AddedByID
	}

	var summaries map[uuid.UUID]reviewmodel.RatingSummary
	var creators map[uuid.UUID]usermodel.PublicUser

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.ratings.Summaries(gctx, bookIDs)
		return err
	})
	g.Go(func() error {
		var err error
		creators, err = s.identity.GetPublicByIDs(gctx, creatorIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to attach book metadata: %w", err)
	}

	responses := make([]model.BookResponse, len(books))
	for i, b := range books {
		responses[i] = b.ToResponse(creators[b.AddedByID], summaries[b.ID])
	}

	return responses, nil
}

func (s *catalogService) GetBookDetail(
	ctx context.Context,
	bookID uuid.UUID,
	reviewPage, reviewLimit int,
) (*model.BookDetailResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	offset, window := pagination.Window(reviewPage, reviewLimit, DefaultReviewLimit, MaxReviewLimit)

	var reviews []reviewmodel.Review
	var totalReviews int
	var summary reviewmodel.RatingSummary

	// The displayed page and the aggregate are independently sized:
	// the aggregate always covers the entire review set.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.ListByBook(gctx, bookID, offset, window)
		return err
	})
	g.Go(func() error {
		var err error
		totalReviews, err = s.reviews.CountByBook(gctx, bookID)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.ratings.Summary(gctx, bookID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load book detail: %w", err)
	}

	// One identity lookup covers the creator and every review author
	ids := make([]uuid.UUID, 0, len(reviews)+1)
	ids = append(ids, book.AddedByID)
	for _, rv := range reviews {
		ids = append(ids, rv.UserID)
	}

	identities, err := s.identity.GetPublicByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identities: %w", err)
	}

	reviewResponses := make([]reviewmodel.ReviewResponse, len(reviews))
	for i := range reviews {
		reviewResponses[i] = reviews[i].ToResponse(identities[reviews[i].UserID])
	}

	if reviewPage < 1 {
		reviewPage = 1
	}

	return &model.BookDetailResponse{
		Book:             book.ToResponse(identities[book.AddedByID], summary),
		Reviews:          reviewResponses,
		ReviewPagination: pagination.Describe(reviewPage, window, totalReviews),
	}, nil
}

func (s *catalogService) CreateBook(
	ctx context.Context,
	principalID uuid.UUID,
	req model.CreateBookRequest,
) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		ISBN:          req.ISBN,
		AddedByID:     principalID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, model.ErrISBNExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	creators, err := s.identity.GetPublicByIDs(ctx, []uuid.UUID{principalID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve creator: %w", err)
	}

	resp := book.ToResponse(creators[principalID], reviewmodel.RatingSummary{})
	return &resp, nil
}
