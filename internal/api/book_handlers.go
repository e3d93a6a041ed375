package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/service"
)

// defaultSearchLimit caps catalog search results.
const defaultSearchLimit = 20

// handleListBooks returns the full catalog.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.ListBooks(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// handleGetBooksByIDs returns display projections for a comma-separated
// list of catalog IDs.
func (s *Server) handleGetBooksByIDs(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		response.BadRequest(w, "Book IDs are required", s.logger)
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid book ID: "+part, s.logger)
			return
		}
		ids = append(ids, id)
	}

	summaries, err := s.bookService.GetBookSummaries(r.Context(), ids)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summaries, s.logger)
}

// handleGetBook returns a book with its reviews. When the request
// carries a session and that user reviewed the book, the review is
// surfaced separately.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := idParam(r, "bookID")
	if err != nil {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	result, err := s.bookService.GetBookWithReviews(r.Context(), bookID, sessionUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}

// handleListFavoriteBooks returns the catalog rows a user favorited.
func (s *Server) handleListFavoriteBooks(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		response.BadRequest(w, "User ID is required", s.logger)
		return
	}

	books, err := s.bookService.ListFavoriteBooks(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// handleAddFavorite records a favorite pair.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req service.FavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	fav, err := s.bookService.AddFavorite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, fav, s.logger)
}

// handleRemoveFavorite deletes a favorite pair.
func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req service.FavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.bookService.RemoveFavorite(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, message("Favorite removed successfully"), s.logger)
}

// handleCheckFavorite reports whether a pair is favorited.
func (s *Server) handleCheckFavorite(w http.ResponseWriter, r *http.Request) {
	var req service.FavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	ok, err := s.bookService.CheckFavorite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]bool{"isFavorite": ok}, s.logger)
}

// handleSearchBooks runs a full-text query over the catalog.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	summaries, err := s.bookService.SearchBooks(r.Context(), query, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summaries, s.logger)
}
