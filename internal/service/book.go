package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/compassreads/compass-server/internal/domain"
	domainerrors "github.com/compassreads/compass-server/internal/errors"
	"github.com/compassreads/compass-server/internal/search"
	"github.com/compassreads/compass-server/internal/store"
)

// Catalog is the slice of the catalog store the book service needs.
type Catalog interface {
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBooksByIDs(ctx context.Context, ids []int64) ([]*domain.Book, error)
	GetBookSummaries(ctx context.Context, ids []int64) ([]*domain.BookSummary, error)
}

// FavoriteStore is the slice of the document store the book service needs.
type FavoriteStore interface {
	AddFavorite(ctx context.Context, fav *domain.Favorite) error
	RemoveFavorite(ctx context.Context, userID, bookID int64) error
	IsFavorite(ctx context.Context, userID, bookID int64) (bool, error)
	ListFavoritesByUser(ctx context.Context, userID int64) ([]*domain.Favorite, error)
}

// BookReviews lists the posts attached to a book.
type BookReviews interface {
	ListPostsByBook(ctx context.Context, bookID int64) ([]*domain.Post, error)
}

// BookService handles catalog browsing, favorites, and search.
type BookService struct {
	catalog   Catalog
	favorites FavoriteStore
	reviews   BookReviews
	index     *search.Index
	logger    *slog.Logger
}

// NewBookService creates a new book service. The search index may be nil,
// in which case Search reports the feature as unavailable.
func NewBookService(catalog Catalog, favorites FavoriteStore, reviews BookReviews, index *search.Index, logger *slog.Logger) *BookService {
	return &BookService{
		catalog:   catalog,
		favorites: favorites,
		reviews:   reviews,
		index:     index,
		logger:    logger,
	}
}

// FavoriteRequest identifies a (user, book) pair.
type FavoriteRequest struct {
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}

// BookWithReviews is the detail view of a book: the catalog row, every
// review, and the session user's own review when present.
type BookWithReviews struct {
	Book       *domain.Book   `json:"book"`
	Reviews    []*domain.Post `json:"reviews"`
	UserReview *domain.Post   `json:"userReview,omitempty"`
}

// ListBooks returns the full catalog.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.catalog.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBookSummaries returns display projections for the given IDs.
func (s *BookService) GetBookSummaries(ctx context.Context, ids []int64) ([]*domain.BookSummary, error) {
	summaries, err := s.catalog.GetBookSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get book summaries: %w", err)
	}
	return summaries, nil
}

// GetBookWithReviews returns a book together with its reviews. When
// sessionUserID is non-zero and has a review on the book, that review is
// surfaced separately as the user's own.
func (s *BookService) GetBookWithReviews(ctx context.Context, bookID, sessionUserID int64) (*BookWithReviews, error) {
	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	reviews, err := s.reviews.ListPostsByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Post{}
	}

	result := &BookWithReviews{Book: book, Reviews: reviews}
	if sessionUserID != 0 {
		for _, r := range reviews {
			if r.UserID == sessionUserID {
				result.UserReview = r
				break
			}
		}
	}
	return result, nil
}

// ListFavoriteBooks returns the catalog rows a user has favorited.
// An empty favorites list reports as not found, matching the API contract.
func (s *BookService) ListFavoriteBooks(ctx context.Context, userID int64) ([]*domain.Book, error) {
	favs, err := s.favorites.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(favs) == 0 {
		return nil, domainerrors.NotFound("No favorites found for this user.")
	}

	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.BookID)
	}

	books, err := s.catalog.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get favorite books: %w", err)
	}
	return books, nil
}

// AddFavorite records a favorite pair and returns the stored record.
func (s *BookService) AddFavorite(ctx context.Context, req FavoriteRequest) (*domain.Favorite, error) {
	fav := &domain.Favorite{
		UserID:    req.UserID,
		BookID:    req.BookID,
		CreatedAt: time.Now(),
	}
	if err := s.favorites.AddFavorite(ctx, fav); err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return fav, nil
}

// RemoveFavorite deletes a favorite pair.
func (s *BookService) RemoveFavorite(ctx context.Context, req FavoriteRequest) error {
	if err := s.favorites.RemoveFavorite(ctx, req.UserID, req.BookID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Favorite not found")
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// CheckFavorite reports whether the pair is favorited.
func (s *BookService) CheckFavorite(ctx context.Context, req FavoriteRequest) (bool, error) {
	ok, err := s.favorites.IsFavorite(ctx, req.UserID, req.BookID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

// SearchBooks runs a full-text query over the catalog index and resolves
// the hits to display summaries, preserving relevance order.
func (s *BookService) SearchBooks(ctx context.Context, query string, limit int) ([]*domain.BookSummary, error) {
	if query == "" {
		return nil, domainerrors.Validation("Search query is required.")
	}
	if s.index == nil {
		return nil, domainerrors.Internal("search is not available")
	}

	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.BookID)
	}

	summaries, err := s.catalog.GetBookSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve search hits: %w", err)
	}
	if summaries == nil {
		summaries = []*domain.BookSummary{}
	}
	return summaries, nil
}
