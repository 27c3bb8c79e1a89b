package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/shared/utils"
)

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, genre, description, published_year, isbn,
			added_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Description,
		book.PublishedYear,
		book.ISBN,
		book.AddedByID,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		// books_isbn_key is a partial unique index over non-null isbn
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrISBNExists
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
		SELECT id, title, author, genre, description, published_year, isbn,
			added_by, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	book := &model.Book{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Description,
		&book.PublishedYear,
		&book.ISBN,
		&book.AddedByID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

func (r *postgresBookRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book: %w", err)
	}

	return exists, nil
}

// buildWhere translates a BookFilter into a WHERE clause. User text is
// escaped so LIKE metacharacters match literally.
func buildWhere(filter BookFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.Query != "" {
		args = append(args, utils.ContainsPattern(filter.Query))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", n, n))
	}
	if filter.Author != "" {
		args = append(args, utils.ContainsPattern(filter.Author))
		clauses = append(clauses, fmt.Sprintf("author ILIKE $%d", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, utils.ContainsPattern(filter.Genre))
		clauses = append(clauses, fmt.Sprintf("genre ILIKE $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

func (r *postgresBookRepository) List(
	ctx context.Context,
	filter BookFilter,
	offset, limit int,
) ([]model.Book, error) {
	where, args := buildWhere(filter)

	query := `
		SELECT id, title, author, genre, description, published_year, isbn,
			added_by, created_at, updated_at
		FROM books` + where + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var book model.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.Description,
			&book.PublishedYear,
			&book.ISBN,
			&book.AddedByID,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}

	return books, nil
}

func (r *postgresBookRepository) Count(ctx context.Context, filter BookFilter) (int, error) {
	where, args := buildWhere(filter)
	query := `SELECT COUNT(*) FROM books` + where

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}

	return total, nil
}
