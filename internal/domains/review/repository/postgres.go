package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/review/model"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		// reviews_book_user_key guards the (book, user) pair
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	review := &model.Review{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
	)

	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

func (r *postgresReviewRepository) ListByBook(
	ctx context.Context,
	bookID uuid.UUID,
	offset, limit int,
) ([]model.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var review model.Review
		err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}

func (r *postgresReviewRepository) CountByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE book_id = $1`

	var total int
	if err := r.pool.QueryRow(ctx, query, bookID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return total, nil
}

func (r *postgresReviewRepository) Summary(
	ctx context.Context,
	bookID uuid.UUID,
) (model.RatingSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(ROUND(AVG(rating)::numeric, 1), 0)
		FROM reviews
		WHERE book_id = $1
	`

	var summary model.RatingSummary
	err := r.pool.QueryRow(ctx, query, bookID).Scan(
		&summary.ReviewCount,
		&summary.AverageRating,
	)
	if err != nil {
		return model.RatingSummary{}, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	return summary, nil
}

func (r *postgresReviewRepository) Summaries(
	ctx context.Context,
	bookIDs []uuid.UUID,
) (map[uuid.UUID]model.RatingSummary, error) {
	result := make(map[uuid.UUID]model.RatingSummary, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT book_id, COUNT(*), ROUND(AVG(rating)::numeric, 1)
		FROM reviews
		WHERE book_id = ANY($1)
		GROUP BY book_id
	`

	rows, err := r.pool.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID uuid.UUID
		var summary model.RatingSummary
		if err := rows.Scan(&bookID, &summary.ReviewCount, &summary.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan rating summary: %w", err)
		}
		result[bookID] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rating summaries: %w", err)
	}

	return result, nil
}
