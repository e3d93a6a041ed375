// Package api provides the HTTP API server and handlers for the Compass
// application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/http/response"
	"github.com/compassreads/compass-server/internal/ratelimit"
	"github.com/compassreads/compass-server/internal/service"
)

// Config holds the server's HTTP-level settings.
type Config struct {
	// CORSOrigins may send credentialed cross-origin requests.
	CORSOrigins []string
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService *service.AuthService
	userService *service.UserService
	bookService *service.BookService
	postService *service.PostService
	recService  *service.RecommendationService
	codec       *auth.CookieCodec
	authLimiter *ratelimit.Limiter
	router      *chi.Mux
	logger      *slog.Logger
	config      Config
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(authService *service.AuthService, userService *service.UserService, bookService *service.BookService, postService *service.PostService, recService *service.RecommendationService, codec *auth.CookieCodec, authLimiter *ratelimit.Limiter, config Config, logger *slog.Logger) *Server {
	s := &Server{
		authService: authService,
		userService: userService,
		bookService: bookService,
		postService: postService,
		recService:  recService,
		codec:       codec,
		authLimiter: authLimiter,
		router:      chi.NewRouter(),
		logger:      logger,
		config:      config,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Every API route sees the session cookie resolved into a
		// request identity; handlers that need it read the context.
		r.Use(s.withSession)

		r.Route("/users", func(r chi.Router) {
			r.With(s.rateLimitAuth).Post("/register", s.handleRegister)
			r.With(s.rateLimitAuth).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/checksession", s.handleCheckSession)
			r.Get("/all", s.handleListUsers)
			r.Get("/{userID}", s.handleGetUser)
			r.Put("/{userID}", s.handleUpdateUser)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleGetBooksByIDs)
			r.Get("/all", s.handleListBooks)
			r.Get("/search", s.handleSearchBooks)
			r.Get("/favorites/{userID}", s.handleListFavoriteBooks)
			r.Post("/favorites", s.handleAddFavorite)
			r.Delete("/favorites", s.handleRemoveFavorite)
			r.Post("/favorites/check", s.handleCheckFavorite)
			r.Get("/{bookID}", s.handleGetBook)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", s.handleCreatePost)
			r.Get("/all", s.handleListPosts)
			r.Get("/book/{bookID}", s.handleListPostsByBook)
			r.Get("/user/{userID}", s.handleListPostsByUser)
			r.Get("/{postID}", s.handleGetPost)
			r.Put("/{postID}", s.handleUpdatePost)
			r.Delete("/{postID}", s.handleDeletePost)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/books", s.handleRecommendByTitles)
			r.Post("/genre", s.handleRecommendBySubGenre)
			r.Get("/{userID}", s.handleListRecommendations)
			r.Delete("/{recID}", s.handleDeleteRecommendation)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
