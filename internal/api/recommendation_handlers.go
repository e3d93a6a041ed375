package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/service"
)

// handleRecommendByTitles asks the scoring service for books similar to
// up to three titles and stores the result.
func (s *Server) handleRecommendByTitles(w http.ResponseWriter, r *http.Request) {
	var req service.TitleRecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	result, err := s.recService.RecommendByTitles(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, result, s.logger)
}

// handleRecommendBySubGenre asks the scoring service for top books in a
// sub-genre and stores the result.
func (s *Server) handleRecommendBySubGenre(w http.ResponseWriter, r *http.Request) {
	var req service.GenreRecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	result, err := s.recService.RecommendBySubGenre(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, result, s.logger)
}

// handleListRecommendations returns a user's stored recommendations
// joined with catalog projections.
func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		response.BadRequest(w, "Invalid user_id format. Must be an integer.", s.logger)
		return
	}

	recs, err := s.recService.ListForUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, recs, s.logger)
}

// handleDeleteRecommendation removes a stored recommendation.
func (s *Server) handleDeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	if err := s.recService.Delete(r.Context(), chi.URLParam(r, "recID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, message("Recommendation deleted."), s.logger)
}
