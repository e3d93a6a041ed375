package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, cover_link, series, average_rating,
	rating_count, review_count, number_of_pages, date_published, publisher,
	isbn, description, main_genres, sub_genres`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var datePublished sql.NullString

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.CoverLink,
		&b.Series,
		&b.AverageRating,
		&b.RatingCount,
		&b.ReviewCount,
		&b.NumberOfPages,
		&datePublished,
		&b.Publisher,
		&b.ISBN,
		&b.Description,
		&b.MainGenres,
		&b.SubGenres,
	)
	if err != nil {
		return nil, err
	}

	b.DatePublished, err = parseNullableTime(datePublished)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// placeholders returns a comma-joined list of n SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args converts a slice of IDs into query arguments.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// UpsertBook inserts a catalog book with an explicit ID, replacing any
// existing row. Used by the seeder; the API never writes books.
func (s *Store) UpsertBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO books (
			id, title, author, cover_link, series, average_rating,
			rating_count, review_count, number_of_pages, date_published,
			publisher, isbn, description, main_genres, sub_genres
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.Title,
		book.Author,
		book.CoverLink,
		book.Series,
		book.AverageRating,
		book.RatingCount,
		book.ReviewCount,
		book.NumberOfPages,
		nullTimeString(book.DatePublished),
		book.Publisher,
		book.ISBN,
		book.Description,
		book.MainGenres,
		book.SubGenres,
	)
	return err
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns the entire catalog ordered by ID.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// GetBooksByIDs returns the books matching the given IDs. Missing IDs are
// silently skipped; the result order follows the input order.
func (s *Store) GetBooksByIDs(ctx context.Context, ids []int64) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	return orderBooks(books, ids), nil
}

// GetBookSummaries returns display summaries for the given IDs, in input
// order, skipping IDs not in the catalog.
func (s *Store) GetBookSummaries(ctx context.Context, ids []int64) ([]*domain.BookSummary, error) {
	books, err := s.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, &domain.BookSummary{
			ID:        b.ID,
			Title:     b.Title,
			CoverLink: b.CoverLink,
		})
	}
	return summaries, nil
}

// GetBookRatingSummaries returns rating summaries for the given IDs, in
// input order, skipping IDs not in the catalog.
func (s *Store) GetBookRatingSummaries(ctx context.Context, ids []int64) ([]*domain.BookRatingSummary, error) {
	books, err := s.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.BookRatingSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, &domain.BookRatingSummary{
			ID:            b.ID,
			Title:         b.Title,
			Author:        b.Author,
			AverageRating: b.AverageRating,
			RatingCount:   b.RatingCount,
		})
	}
	return summaries, nil
}

// GetBooksByTitles returns the books whose titles exactly match the given
// list. Titles with no catalog match are skipped.
func (s *Store) GetBooksByTitles(ctx context.Context, titles []string) ([]*domain.Book, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	args := make([]any, len(titles))
	for i, t := range titles {
		args[i] = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title IN (`+placeholders(len(titles))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// collectBooks drains a result set into a slice.
func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// orderBooks reorders query results to follow the caller's ID order.
func orderBooks(books []*domain.Book, ids []int64) []*domain.Book {
	byID := make(map[int64]*domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	ordered := make([]*domain.Book, 0, len(books))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered
}
