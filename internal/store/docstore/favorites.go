package docstore

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store"
)

// favoriteKey builds the pair key for a user's favorite of a book.
// Pair keying makes AddFavorite naturally idempotent.
func favoriteKey(userID, bookID int64) []byte {
	return []byte(favByUserPrefix + formatID(userID) + ":" + formatID(bookID))
}

// AddFavorite records a favorite. Adding an existing favorite is a no-op
// that keeps the original timestamp.
func (s *Store) AddFavorite(_ context.Context, fav *domain.Favorite) error {
	key := favoriteKey(fav.UserID, fav.BookID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check favorite exists: %w", err)
	}
	if exists {
		return nil
	}

	return s.set(key, fav)
}

// RemoveFavorite deletes a favorite.
// Returns store.ErrNotFound if the pair was never favorited.
func (s *Store) RemoveFavorite(_ context.Context, userID, bookID int64) error {
	key := favoriteKey(userID, bookID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check favorite exists: %w", err)
	}
	if !exists {
		return store.ErrNotFound
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// IsFavorite reports whether the user has favorited the book.
func (s *Store) IsFavorite(_ context.Context, userID, bookID int64) (bool, error) {
	return s.exists(favoriteKey(userID, bookID))
}

// ListFavoritesByUser returns a user's favorites, newest first.
func (s *Store) ListFavoritesByUser(_ context.Context, userID int64) ([]*domain.Favorite, error) {
	prefix := []byte(favByUserPrefix + formatID(userID) + ":")
	var favs []*domain.Favorite

	err := s.iterateValues(prefix, func(val []byte) error {
		var fav domain.Favorite
		if err := json.Unmarshal(val, &fav); err != nil {
			return fmt.Errorf("unmarshal favorite: %w", err)
		}
		favs = append(favs, &fav)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	sort.Slice(favs, func(i, j int) bool {
		if !favs[i].CreatedAt.Equal(favs[j].CreatedAt) {
			return favs[i].CreatedAt.After(favs[j].CreatedAt)
		}
		return favs[i].BookID > favs[j].BookID
	})
	return favs, nil
}
