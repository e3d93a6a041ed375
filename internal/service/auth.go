// Package service contains the application's business logic. Services sit
// between the HTTP handlers and the stores, validate input, and translate
// store errors into domain errors.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/domain"
	domainerrors "github.com/compassreads/compass-server/internal/errors"
	"github.com/compassreads/compass-server/internal/store"
	"github.com/compassreads/compass-server/internal/validation"
)

// UserAccounts is the slice of the catalog store auth needs.
type UserAccounts interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionStore is the slice of the document store auth needs.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// AuthService handles registration, login, logout, and session checks.
type AuthService struct {
	users      UserAccounts
	sessions   SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserAccounts, sessions SessionStore, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login. The session ID is
// sealed into a cookie by the HTTP layer; it never appears in a body.
type LoginResult struct {
	User      LoginUser
	SessionID string
}

// LoginUser is the user projection returned by login.
type LoginUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionCheck reports whether a session resolves to a live user.
type SessionCheck struct {
	IsLoggedIn bool            `json:"isLoggedIn"`
	User       *domain.Profile `json:"user,omitempty"`
}

// Register creates a new account. The email must parse and the password
// must pass every strength rule; defaults fill the profile fields.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return domainerrors.Validation("Please provide an email and a password.")
	}
	if !validation.IsValidEmail(req.Email) {
		return domainerrors.Validation("Please enter a valid email address.")
	}
	if result := validation.ValidatePassword(req.Password); !result.IsValid {
		return domainerrors.ValidationWithDetails("Password validation failed.", result.Errors)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         domain.DefaultUserName,
		Bio:          domain.DefaultUserBio,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.AlreadyExists("Email already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login verifies credentials and opens a session. Unknown emails and wrong
// passwords produce the same error, so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domainerrors.Validation("Please provide an email and a password.")
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("Invalid email or password")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domainerrors.InvalidCredentials("Invalid email or password")
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &LoginResult{
		User:      LoginUser{ID: user.ID, Email: user.Email, Name: user.Name},
		SessionID: session.ID,
	}, nil
}

// Logout ends a session. Unknown sessions are ignored so logout is
// always safe to call.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

// CheckSession resolves a session ID into its user. Every failure mode
// reports as logged-out rather than an error.
func (s *AuthService) CheckSession(ctx context.Context, sessionID string) (*SessionCheck, error) {
	if sessionID == "" {
		return &SessionCheck{IsLoggedIn: false}, nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return &SessionCheck{IsLoggedIn: false}, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return &SessionCheck{IsLoggedIn: false}, nil
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}

	profile := user.Profile()
	return &SessionCheck{IsLoggedIn: true, User: &profile}, nil
}

// ResolveSession returns the user ID behind a session, or 0 when the
// session is missing or expired. Used by the request middleware.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (int64, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get session: %w", err)
	}
	return session.UserID, nil
}
