package api

import (
	"net/http"

	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/service"
)

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.authService.Register(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, message("User registered successfully"), s.logger)
}

// handleLogin verifies credentials and sets the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	result, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	sealed, err := s.codec.Seal(result.SessionID)
	if err != nil {
		s.logger.Error("failed to seal session cookie", "error", err)
		response.InternalError(w, "Server error during login", s.logger)
		return
	}
	s.setSessionCookie(w, sealed)

	response.Success(w, map[string]any{
		"message": "Authentication successful",
		"user":    result.User,
	}, s.logger)
}

// handleLogout deletes the session and clears the cookie. Safe to call
// without a live session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), sessionID(r.Context())); err != nil {
		s.logger.Error("failed to delete session", "error", err)
		response.InternalError(w, "Server error during logout", s.logger)
		return
	}

	s.clearSessionCookie(w)
	response.Success(w, message("Logout successful"), s.logger)
}

// handleCheckSession reports whether the request carries a live session.
// Always answers 200; failure modes read as logged-out.
func (s *Server) handleCheckSession(w http.ResponseWriter, r *http.Request) {
	check, err := s.authService.CheckSession(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.logger.Error("failed to check session", "error", err)
		response.Success(w, &service.SessionCheck{IsLoggedIn: false}, s.logger)
		return
	}
	response.Success(w, check, s.logger)
}

// setSessionCookie installs the sealed session token.
func (s *Server) setSessionCookie(w http.ResponseWriter, sealed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(s.codec.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   s.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
