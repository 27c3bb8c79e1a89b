package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	usermodel "bookreview-backend/internal/domains/user/model"
)

// fakeBookRepo implements the catalog storage surface in memory. The
// filter semantics mirror the ILIKE queries: case-insensitive literal
// substring matching, title OR author for Query.
type fakeBookRepo struct {
	books []model.Book
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	if book.ISBN != nil {
		for _, b := range f.books {
			if b.ISBN != nil && *b.ISBN == *book.ISBN {
				return model.ErrISBNExists
			}
		}
	}
	f.books = append(f.books, *book)
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	for i := range f.books {
		if f.books[i].ID == id {
			cp := f.books[i]
			return &cp, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeBookRepo) List(ctx context.Context, filter repository.BookFilter, offset, limit int) ([]model.Book, error) {
	matched := f.match(filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeBookRepo) Count(ctx context.Context, filter repository.BookFilter) (int, error) {
	return len(f.match(filter)), nil
}

func (f *fakeBookRepo) match(filter repository.BookFilter) []model.Book {
	var out []model.Book
	for _, b := range f.books {
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(b.Title), q) &&
				!strings.Contains(strings.ToLower(b.Author), q) {
				continue
			}
		}
		if filter.Author != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(filter.Author)) {
			continue
		}
		if filter.Genre != "" && !strings.Contains(strings.ToLower(b.Genre), strings.ToLower(filter.Genre)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// fakeReviewSource backs both RatingSource and ReviewSource from one
// review set, the way the real review repository does.
type fakeReviewSource struct {
	reviews []reviewmodel.Review
}

func (f *fakeReviewSource) ListByBook(ctx context.Context, bookID uuid.UUID, offset, limit int) ([]reviewmodel.Review, error) {
	var matched []reviewmodel.Review
	for _, rv := range f.reviews {
		if rv.BookID == bookID {
			matched = append(matched, rv)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeReviewSource) CountByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	n := 0
	for _, rv := range f.reviews {
		if rv.BookID == bookID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewSource) Summary(ctx context.Context, bookID uuid.UUID) (reviewmodel.RatingSummary, error) {
	var ratings []int
	for _, rv := range f.reviews {
		if rv.BookID == bookID {
			ratings = append(ratings, rv.Rating)
		}
	}
	return reviewmodel.Summarize(ratings), nil
}

func (f *fakeReviewSource) Summaries(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]reviewmodel.RatingSummary, error) {
	out := make(map[uuid.UUID]reviewmodel.RatingSummary)
	for _, id := range bookIDs {
		summary, _ := f.Summary(ctx, id)
		if summary.ReviewCount > 0 {
			out[id] = summary
		}
	}
	return out, nil
}

type fakeIdentitySource struct {
	users map[uuid.UUID]usermodel.PublicUser
}

func (f *fakeIdentitySource) GetPublicByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]usermodel.PublicUser, error) {
	out := make(map[uuid.UUID]usermodel.PublicUser)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type catalogFixture struct {
	svc      ServiceInterface
	bookRepo *fakeBookRepo
	reviews  *fakeReviewSource
	creator  usermodel.PublicUser
	dune     model.Book
	empty    model.Book
}

// newCatalogFixture seeds two books: Dune with three reviews (4, 5, 4)
// and an unreviewed one.
func newCatalogFixture() *catalogFixture {
	creator := usermodel.PublicUser{ID: uuid.New(), Username: "librarian"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	dune := model.Book{
		ID:        uuid.New(),
		Title:     "Dune",
		Author:    "Frank Herbert",
		Genre:     "Science Fiction",
		AddedByID: creator.ID,
		CreatedAt: base,
		UpdatedAt: base,
	}
	empty := model.Book{
		ID:        uuid.New(),
		Title:     "The Dispossessed",
		Author:    "Ursula K. Le Guin",
		Genre:     "Science Fiction",
		AddedByID: creator.ID,
		CreatedAt: base.Add(time.Hour),
		UpdatedAt: base.Add(time.Hour),
	}

	users := map[uuid.UUID]usermodel.PublicUser{creator.ID: creator}
	var reviews []reviewmodel.Review
	for i, rating := range []int{4, 5, 4} {
		reviewer := usermodel.PublicUser{ID: uuid.New(), Username: "reader"}
		users[reviewer.ID] = reviewer
		reviews = append(reviews, reviewmodel.Review{
			ID:        uuid.New(),
			BookID:    dune.ID,
			UserID:    reviewer.ID,
			Rating:    rating,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	bookRepo := &fakeBookRepo{books: []model.Book{dune, empty}}
	reviewSource := &fakeReviewSource{reviews: reviews}
	identity := &fakeIdentitySource{users: users}

	return &catalogFixture{
		svc:      NewCatalogService(bookRepo, reviewSource, reviewSource, identity),
		bookRepo: bookRepo,
		reviews:  reviewSource,
		creator:  creator,
		dune:     dune,
		empty:    empty,
	}
}

func TestListBooksAggregates(t *testing.T) {
	fx := newCatalogFixture()

	resp, err := fx.svc.ListBooks(context.Background(), model.ListBooksRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Books, 2)

	byTitle := make(map[string]model.BookResponse)
	for _, b := range resp.Books {
		byTitle[b.Title] = b
	}

	// (4+5+4)/3 = 4.333... rounds to 4.3
	dune := byTitle["Dune"]
	assert.Equal(t, 4.3, dune.AverageRating)
	assert.Equal(t, 3, dune.ReviewCount)
	assert.Equal(t, "librarian", dune.AddedBy.Username)

	// Unreviewed books carry the zero aggregate, not an absent one.
	unreviewed := byTitle["The Dispossessed"]
	assert.Equal(t, 0.0, unreviewed.AverageRating)
	assert.Equal(t, 0, unreviewed.ReviewCount)

	assert.Equal(t, 2, resp.Pagination.TotalItems)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
}

func TestListBooksAuthorFilter(t *testing.T) {
	fx := newCatalogFixture()

	resp, err := fx.svc.ListBooks(context.Background(), model.ListBooksRequest{
		Author: "le guin",
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "The Dispossessed", resp.Books[0].Title)
}

func TestListBooksOutOfRangePage(t *testing.T) {
	fx := newCatalogFixture()

	resp, err := fx.svc.ListBooks(context.Background(), model.ListBooksRequest{Page: 7, Limit: 10})
	require.NoError(t, err)

	// Past the end: empty page, descriptor still reflects the total.
	assert.Empty(t, resp.Books)
	assert.Equal(t, 2, resp.Pagination.TotalItems)
	assert.Equal(t, 7, resp.Pagination.CurrentPage)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestGetBookDetail(t *testing.T) {
	fx := newCatalogFixture()

	resp, err := fx.svc.GetBookDetail(context.Background(), fx.dune.ID, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, "Dune", resp.Book.Title)
	assert.Equal(t, 4.3, resp.Book.AverageRating)
	assert.Equal(t, 3, resp.Book.ReviewCount)

	// The review page is capped at 2 but the aggregate covers all 3.
	require.Len(t, resp.Reviews, 2)
	assert.Equal(t, 3, resp.ReviewPagination.TotalItems)
	assert.Equal(t, 2, resp.ReviewPagination.TotalPages)
	assert.True(t, resp.ReviewPagination.HasNext)
	assert.Equal(t, "reader", resp.Reviews[0].User.Username)
}

func TestGetBookDetailNotFound(t *testing.T) {
	fx := newCatalogFixture()

	_, err := fx.svc.GetBookDetail(context.Background(), uuid.New(), 1, 5)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestSearchBooks(t *testing.T) {
	fx := newCatalogFixture()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title substring", "dune", []string{"Dune"}},
		{"author substring", "herbert", []string{"Dune"}},
		{"case insensitive", "DISPOSSESSED", []string{"The Dispossessed"}},
		{"no match", "middlemarch", nil},
		{"metacharacters are literal", "100%", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := fx.svc.SearchBooks(context.Background(), model.SearchBooksRequest{
				Query: tt.query,
				Page:  1,
				Limit: 10,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.query, resp.Query)
			var titles []string
			for _, b := range resp.Books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSearchBooksEmptyQuery(t *testing.T) {
	fx := newCatalogFixture()

	_, err := fx.svc.SearchBooks(context.Background(), model.SearchBooksRequest{Query: "", Page: 1, Limit: 10})
	assert.Error(t, err)
}

func TestCreateBook(t *testing.T) {
	fx := newCatalogFixture()
	isbn := "9780441013593"

	resp, err := fx.svc.CreateBook(context.Background(), fx.creator.ID, model.CreateBookRequest{
		Title:  "Children of Dune",
		Author: "Frank Herbert",
		Genre:  "Science Fiction",
		ISBN:   &isbn,
	})
	require.NoError(t, err)

	assert.Equal(t, "Children of Dune", resp.Title)
	assert.Equal(t, "librarian", resp.AddedBy.Username)
	assert.Equal(t, 0, resp.ReviewCount)
	assert.Equal(t, 0.0, resp.AverageRating)

	// Second book with the same ISBN is rejected by storage.
	_, err = fx.svc.CreateBook(context.Background(), fx.creator.ID, model.CreateBookRequest{
		Title:  "Duplicate",
		Author: "Someone Else",
		Genre:  "Science Fiction",
		ISBN:   &isbn,
	})
	assert.ErrorIs(t, err, model.ErrISBNExists)
}

func TestCreateBookWithoutISBN(t *testing.T) {
	fx := newCatalogFixture()

	// ISBN is sparse-unique: two absent ISBNs never collide.
	for _, title := range []string{"Heretics of Dune", "Chapterhouse: Dune"} {
		resp, err := fx.svc.CreateBook(context.Background(), fx.creator.ID, model.CreateBookRequest{
			Title:  title,
			Author: "Frank Herbert",
			Genre:  "Science Fiction",
		})
		require.NoError(t, err)
		assert.Nil(t, resp.ISBN)
	}
}

func TestCreateBookValidation(t *testing.T) {
	fx := newCatalogFixture()

	_, err := fx.svc.CreateBook(context.Background(), fx.creator.ID, model.CreateBookRequest{
		Author: "No Title",
		Genre:  "Mystery",
	})
	assert.Error(t, err)
}
