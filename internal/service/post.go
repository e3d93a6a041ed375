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
	"github.com/compassreads/compass-server/internal/validation"
)

// PostStore is the slice of the document store the post service needs.
type PostStore interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	ListPostsByBook(ctx context.Context, bookID int64) ([]*domain.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*domain.Post, error)
}

// PostService handles book reviews.
type PostService struct {
	posts     PostStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(posts PostStore, validator *validation.Validator, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, validator: validator, logger: logger}
}

// CreatePostRequest contains a new review. Book existence is deliberately
// not verified; posts reference the catalog by soft foreign key.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	BookID  int64  `json:"book_id" validate:"required,gt=0"`
}

// UpdatePostRequest carries a partial edit. Only fields present in the
// request body change; nil means keep the stored value.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreatePost stores a new review.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	now := time.Now()
	post := &domain.Post{
		ID:        postID,
		Title:     req.Title,
		Content:   req.Content,
		UserID:    req.UserID,
		BookID:    req.BookID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("post created", "post_id", post.ID, "book_id", post.BookID)
	return post, nil
}

// GetPost returns one review.
func (s *PostService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// ListPosts returns every review.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListPostsByBook returns every review of a book.
func (s *PostService) ListPostsByBook(ctx context.Context, bookID int64) ([]*domain.Post, error) {
	posts, err := s.posts.ListPostsByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list posts by book: %w", err)
	}
	return posts, nil
}

// ListPostsByUser returns every review by a user.
func (s *PostService) ListPostsByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	posts, err := s.posts.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	return posts, nil
}

// UpdatePost applies a partial edit and returns the updated review.
// There is no ownership check; any caller may edit any post.
func (s *PostService) UpdatePost(ctx context.Context, postID string, req UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.Touch()

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a review.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Post not found")
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger.Info("post deleted", "post_id", postID)
	return nil
}
