package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	usermodel "bookreview-backend/internal/domains/user/model"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	books      BookSource
	identity   IdentitySource
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	books BookSource,
	identity IdentitySource,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		books:      books,
		identity:   identity,
	}
}

func (s *reviewService) CreateReview(
	ctx context.Context,
	principalID, bookID uuid.UUID,
	req model.CreateReviewRequest,
) (*model.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, bookmodel.ErrBookNotFound
	}

	now := time.Now()
	review := &model.Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    principalID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Uniqueness lives in storage, not in a read-then-write check.
	// Concurrent duplicates both hit the constraint and exactly one wins.
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	author, err := s.author(ctx, principalID)
	if err != nil {
		return nil, err
	}

	resp := review.ToResponse(author)
	return &resp, nil
}

func (s *reviewService) UpdateReview(
	ctx context.Context,
	principalID, reviewID uuid.UUID,
	req model.UpdateReviewRequest,
) (*model.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != principalID {
		return nil, model.ErrNotOwner
	}

	// Merge-patch: absent fields keep their stored value.
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}
	review.UpdatedAt = time.Now()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	author, err := s.author(ctx, principalID)
	if err != nil {
		return nil, err
	}

	resp := review.ToResponse(author)
	book, err := s.books.GetByID(ctx, review.BookID)
	if err != nil {
		return nil, err
	}
	resp.BookTitle = book.Title
	return &resp, nil
}

func (s *reviewService) DeleteReview(
	ctx context.Context,
	principalID, reviewID uuid.UUID,
) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != principalID {
		return model.ErrNotOwner
	}

	return s.reviewRepo.Delete(ctx, review.ID)
}

func (s *reviewService) author(ctx context.Context, id uuid.UUID) (usermodel.PublicUser, error) {
	users, err := s.identity.GetPublicByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return usermodel.PublicUser{}, err
	}
	return users[id], nil
}
