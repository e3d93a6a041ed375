package docstore

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store"
)

// CreatePost stores a new post and its index entries.
// Returns store.ErrAlreadyExists if the post ID is already taken.
func (s *Store) CreatePost(_ context.Context, post *domain.Post) error {
	key := []byte(postPrefix + post.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if exists {
		return store.ErrAlreadyExists
	}

	bookIndexKey := []byte(postByBookPrefix + formatID(post.BookID) + ":" + post.ID)
	userIndexKey := []byte(postByUserPrefix + formatID(post.UserID) + ":" + post.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("marshal post: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(bookIndexKey, []byte{}); err != nil {
			return err
		}
		return txn.Set(userIndexKey, []byte{})
	})
}

// GetPost retrieves a post by ID.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) GetPost(_ context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := s.get([]byte(postPrefix+id), &post); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// UpdatePost replaces an existing post record. The post's user and book
// references never change after creation, so index keys stay as they are.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) error {
	key := []byte(postPrefix + post.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return store.ErrNotFound
	}

	return s.set(key, post)
}

// DeletePost removes a post and its index entries.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	key := []byte(postPrefix + id)
	bookIndexKey := []byte(postByBookPrefix + formatID(post.BookID) + ":" + id)
	userIndexKey := []byte(postByUserPrefix + formatID(post.UserID) + ":" + id)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return err
		}
		if err := txn.Delete(bookIndexKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(userIndexKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// ListPosts returns every post, newest first. Index keys share the post
// prefix, so primary records are picked out by their ID segment.
func (s *Store) ListPosts(_ context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(postPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if strings.HasPrefix(string(it.Item().Key()), postPrefix+"idx:") {
				continue
			}
			err := it.Item().Value(func(val []byte) error {
				var post domain.Post
				if err := json.Unmarshal(val, &post); err != nil {
					return fmt.Errorf("unmarshal post: %w", err)
				}
				posts = append(posts, &post)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	sortPosts(posts)
	return posts, nil
}

// ListPostsByBook returns all posts for a book, newest first.
func (s *Store) ListPostsByBook(ctx context.Context, bookID int64) ([]*domain.Post, error) {
	prefix := postByBookPrefix + formatID(bookID) + ":"
	return s.listPostsByIndex(ctx, prefix)
}

// ListPostsByUser returns all posts by a user, newest first.
func (s *Store) ListPostsByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	prefix := postByUserPrefix + formatID(userID) + ":"
	return s.listPostsByIndex(ctx, prefix)
}

// listPostsByIndex resolves index keys under a prefix into full posts,
// sorted newest first by creation time.
func (s *Store) listPostsByIndex(ctx context.Context, prefix string) ([]*domain.Post, error) {
	var posts []*domain.Post

	err := s.iterateKeys([]byte(prefix), func(key string) error {
		postID := strings.TrimPrefix(key, prefix)

		post, err := s.GetPost(ctx, postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil // Stale index entry, skip
			}
			return err
		}

		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	sortPosts(posts)
	return posts, nil
}

// sortPosts orders posts newest first, ties broken by ID for stability.
func sortPosts(posts []*domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
