package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/service"
)

// handleCreatePost stores a new review.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	post, err := s.postService.CreatePost(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, post, s.logger)
}

// handleGetPost returns one review.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.postService.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, post, s.logger)
}

// handleListPosts returns every review, newest first.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.postService.ListPosts(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, posts, s.logger)
}

// handleListPostsByBook returns every review of a book.
func (s *Server) handleListPostsByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := idParam(r, "bookID")
	if err != nil {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	posts, err := s.postService.ListPostsByBook(r.Context(), bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, posts, s.logger)
}

// handleListPostsByUser returns every review by a user.
func (s *Server) handleListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		response.BadRequest(w, "User ID is required", s.logger)
		return
	}

	posts, err := s.postService.ListPostsByUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, posts, s.logger)
}

// handleUpdatePost applies a partial edit to a review.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	post, err := s.postService.UpdatePost(r.Context(), chi.URLParam(r, "postID"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, post, s.logger)
}

// handleDeletePost removes a review.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.postService.DeletePost(r.Context(), chi.URLParam(r, "postID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, message("Post deleted"), s.logger)
}
