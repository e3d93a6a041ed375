package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/compassreads/compass-server/internal/domain"
	domainerrors "github.com/compassreads/compass-server/internal/errors"
	"github.com/compassreads/compass-server/internal/id"
	"github.com/compassreads/compass-server/internal/store"
)

// RecommendationGateway is the outbound call surface to the external
// scoring service.
type RecommendationGateway interface {
	SimilarBooks(ctx context.Context, titles []string, excludeSameAuthor bool) ([]int64, error)
	BySubGenre(ctx context.Context, subGenre string) ([]int64, error)
}

// RecommendationStore is the slice of the document store the
// recommendation service needs.
type RecommendationStore interface {
	CreateRecommendation(ctx context.Context, rec *domain.Recommendation) error
	ListRecommendationsByUser(ctx context.Context, userID int64) ([]*domain.Recommendation, error)
	DeleteRecommendation(ctx context.Context, id string) error
}

// RecommendationCatalog is the slice of the catalog store the
// recommendation service needs.
type RecommendationCatalog interface {
	GetBooksByTitles(ctx context.Context, titles []string) ([]*domain.Book, error)
	GetBookSummaries(ctx context.Context, ids []int64) ([]*domain.BookSummary, error)
	GetBookRatingSummaries(ctx context.Context, ids []int64) ([]*domain.BookRatingSummary, error)
}

// RecommendationService orchestrates gateway calls, catalog lookups, and
// recommendation history.
type RecommendationService struct {
	gateway RecommendationGateway
	recs    RecommendationStore
	catalog RecommendationCatalog
	logger  *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(gateway RecommendationGateway, recs RecommendationStore, catalog RecommendationCatalog, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		gateway: gateway,
		recs:    recs,
		catalog: catalog,
		logger:  logger,
	}
}

// TitleRecommendationRequest asks for books similar to up to three titles.
type TitleRecommendationRequest struct {
	UserID            int64    `json:"user_id"`
	BookTitles        []string `json:"book_titles"`
	ExcludeSameAuthor bool     `json:"exclude_same_author"`
}

// GenreRecommendationRequest asks for top books in a sub-genre.
type GenreRecommendationRequest struct {
	UserID   int64  `json:"user_id"`
	SubGenre string `json:"sub_genre"`
}

// RecommendationResult is the response to a new recommendation query.
type RecommendationResult struct {
	UserID          int64                       `json:"user_id"`
	InputBookIDs    []int64                     `json:"input_book_ids,omitempty"`
	InputSubGenre   string                      `json:"input_sub_genre,omitempty"`
	Recommendations []*domain.BookRatingSummary `json:"recommendations"`
}

// RecommendationWithBooks is a stored recommendation joined with display
// projections of its output books.
type RecommendationWithBooks struct {
	*domain.Recommendation
	Books []*domain.BookSummary `json:"books"`
}

// RecommendByTitles asks the scoring service for books similar to the
// given titles. Input size is checked before any outbound call.
func (s *RecommendationService) RecommendByTitles(ctx context.Context, req TitleRecommendationRequest) (*RecommendationResult, error) {
	if len(req.BookTitles) < 1 || len(req.BookTitles) > 3 {
		return nil, domainerrors.Validation("1 to 3 book titles are required.")
	}

	outputIDs, err := s.gateway.SimilarBooks(ctx, req.BookTitles, req.ExcludeSameAuthor)
	if err != nil {
		s.logger.Error("similar-books gateway call failed", "error", err)
		return nil, domainerrors.Internal("Error in recommendation process").WithCause(err)
	}

	// Resolve the input titles to catalog IDs for the stored record.
	inputBooks, err := s.catalog.GetBooksByTitles(ctx, req.BookTitles)
	if err != nil {
		return nil, fmt.Errorf("resolve input titles: %w", err)
	}
	inputIDs := make([]int64, 0, len(inputBooks))
	for _, b := range inputBooks {
		inputIDs = append(inputIDs, b.ID)
	}

	if err := s.saveRecommendation(ctx, &domain.Recommendation{
		UserID:        req.UserID,
		InputBookIDs:  inputIDs,
		OutputBookIDs: outputIDs,
	}); err != nil {
		return nil, err
	}

	recommended, err := s.catalog.GetBookRatingSummaries(ctx, outputIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve recommended books: %w", err)
	}

	return &RecommendationResult{
		UserID:          req.UserID,
		InputBookIDs:    inputIDs,
		Recommendations: recommended,
	}, nil
}

// RecommendBySubGenre asks the scoring service for top books in a genre.
func (s *RecommendationService) RecommendBySubGenre(ctx context.Context, req GenreRecommendationRequest) (*RecommendationResult, error) {
	if req.SubGenre == "" {
		return nil, domainerrors.Validation("Sub-genre is required.")
	}

	outputIDs, err := s.gateway.BySubGenre(ctx, req.SubGenre)
	if err != nil {
		s.logger.Error("sub-genre gateway call failed", "error", err)
		return nil, domainerrors.Internal("Error fetching sub-genre recommendations").WithCause(err)
	}

	if err := s.saveRecommendation(ctx, &domain.Recommendation{
		UserID:        req.UserID,
		InputSubGenre: req.SubGenre,
		OutputBookIDs: outputIDs,
	}); err != nil {
		return nil, err
	}

	recommended, err := s.catalog.GetBookRatingSummaries(ctx, outputIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve recommended books: %w", err)
	}

	return &RecommendationResult{
		UserID:          req.UserID,
		InputSubGenre:   req.SubGenre,
		Recommendations: recommended,
	}, nil
}

// saveRecommendation assigns an ID and timestamp and persists the record.
func (s *RecommendationService) saveRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	recID, err := id.Generate("rec")
	if err != nil {
		return fmt.Errorf("generate recommendation ID: %w", err)
	}
	rec.ID = recID
	rec.CreatedAt = time.Now()

	if err := s.recs.CreateRecommendation(ctx, rec); err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}

	s.logger.Info("recommendation saved", "rec_id", rec.ID, "user_id", rec.UserID)
	return nil
}

// ListForUser returns a user's recommendation history, each entry joined
// with summaries of its output books. An empty history reports not found.
func (s *RecommendationService) ListForUser(ctx context.Context, userID int64) ([]*RecommendationWithBooks, error) {
	recs, err := s.recs.ListRecommendationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	if len(recs) == 0 {
		return nil, domainerrors.NotFound("No recommendations found for this user.")
	}

	result := make([]*RecommendationWithBooks, 0, len(recs))
	for _, rec := range recs {
		books, err := s.catalog.GetBookSummaries(ctx, rec.OutputBookIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve recommendation books: %w", err)
		}
		if books == nil {
			books = []*domain.BookSummary{}
		}
		result = append(result, &RecommendationWithBooks{Recommendation: rec, Books: books})
	}
	return result, nil
}

// Delete removes a stored recommendation. Malformed IDs are rejected
// before touching the store.
func (s *RecommendationService) Delete(ctx context.Context, recID string) error {
	if !id.HasPrefix(recID, "rec") {
		return domainerrors.Validation("Invalid recommendation ID format.")
	}

	if err := s.recs.DeleteRecommendation(ctx, recID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Recommendation not found.")
		}
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}
