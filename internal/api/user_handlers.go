package api

import (
	"net/http"

	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/service"
)

// handleListUsers returns public projections of every user.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, users, s.logger)
}

// handleGetUser returns one user's public projection.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		response.BadRequest(w, "User ID is required", s.logger)
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, s.logger)
}

// handleUpdateUser replaces a user's profile fields. There is no
// ownership check; the original API trusts the client here.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		response.BadRequest(w, "User ID is required", s.logger)
		return
	}

	var req service.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.userService.UpdateUser(r.Context(), userID, req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, message("User updated successfully"), s.logger)
}
