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

// CreateRecommendation stores a recommendation record and its user index.
// Returns store.ErrAlreadyExists if the ID is already taken.
func (s *Store) CreateRecommendation(_ context.Context, rec *domain.Recommendation) error {
	key := []byte(recPrefix + rec.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check recommendation exists: %w", err)
	}
	if exists {
		return store.ErrAlreadyExists
	}

	userIndexKey := []byte(recByUserPrefix + formatID(rec.UserID) + ":" + rec.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal recommendation: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(userIndexKey, []byte{})
	})
}

// GetRecommendation retrieves a recommendation by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetRecommendation(_ context.Context, id string) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	if err := s.get([]byte(recPrefix+id), &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get recommendation: %w", err)
	}
	return &rec, nil
}

// ListRecommendationsByUser returns a user's recommendation history,
// newest first.
func (s *Store) ListRecommendationsByUser(ctx context.Context, userID int64) ([]*domain.Recommendation, error) {
	prefix := recByUserPrefix + formatID(userID) + ":"
	var recs []*domain.Recommendation

	err := s.iterateKeys([]byte(prefix), func(key string) error {
		recID := strings.TrimPrefix(key, prefix)

		rec, err := s.GetRecommendation(ctx, recID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil // Stale index entry, skip
			}
			return err
		}

		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID > recs[j].ID
	})
	return recs, nil
}

// DeleteRecommendation removes a recommendation and its user index.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteRecommendation(ctx context.Context, id string) error {
	rec, err := s.GetRecommendation(ctx, id)
	if err != nil {
		return err
	}

	key := []byte(recPrefix + id)
	userIndexKey := []byte(recByUserPrefix + formatID(rec.UserID) + ":" + id)

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return err
		}
		if err := txn.Delete(userIndexKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}
