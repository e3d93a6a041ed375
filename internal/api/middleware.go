package api

import (
	"context"
	"net"
	"net/http"

	"github.com/compassreads/compass-server/internal/http/response"
)

// sessionCookieName is the cookie carrying the sealed session token.
const sessionCookieName = "compass_session"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeySessionID contextKey = "session_id"
)

// withSession resolves the session cookie into a request identity. The
// cookie value is opened with the codec and looked up in the session
// store exactly once per request; handlers read the result from the
// context. A missing, forged, or expired cookie leaves the request
// anonymous rather than failing it.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := s.codec.Open(cookie.Value)
		if err != nil {
			s.logger.Debug("rejected session cookie", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		userID, err := s.authService.ResolveSession(r.Context(), sessionID)
		if err != nil {
			s.logger.Error("failed to resolve session", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySessionID, sessionID)
		if userID != 0 {
			ctx = context.WithValue(ctx, contextKeyUserID, userID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitAuth throttles credential endpoints per client IP.
func (s *Server) rateLimitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !s.authLimiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionUserID extracts the authenticated user ID from request context.
// Returns 0 if the request is anonymous.
func sessionUserID(ctx context.Context) int64 {
	if userID, ok := ctx.Value(contextKeyUserID).(int64); ok {
		return userID
	}
	return 0
}

// sessionID extracts the session ID from request context.
// Returns empty string if no valid session cookie was presented.
func sessionID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeySessionID).(string); ok {
		return id
	}
	return ""
}

// clientIP returns the request's client address without the port.
// RealIP middleware has already folded proxy headers into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
