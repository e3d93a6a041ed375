package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store"
)

func makeTestRecommendation(id string, userID int64, createdAt time.Time) *domain.Recommendation {
	return &domain.Recommendation{
		ID:            id,
		UserID:        userID,
		InputBookIDs:  []int64{1, 2},
		OutputBookIDs: []int64{7, 8, 9},
		CreatedAt:     createdAt,
	}
}

func TestCreateAndGetRecommendation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := makeTestRecommendation("rec-abc", 1, time.Now())
	if err := s.CreateRecommendation(ctx, rec); err != nil {
		t.Fatalf("CreateRecommendation: %v", err)
	}

	got, err := s.GetRecommendation(ctx, "rec-abc")
	if err != nil {
		t.Fatalf("GetRecommendation: %v", err)
	}
	if got.UserID != 1 || len(got.OutputBookIDs) != 3 {
		t.Errorf("got %+v", got)
	}

	if err := s.CreateRecommendation(ctx, rec); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListRecommendationsByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"rec-a", "rec-b", "rec-c"} {
		rec := makeTestRecommendation(id, 1, base.Add(time.Duration(i)*time.Minute))
		if err := s.CreateRecommendation(ctx, rec); err != nil {
			t.Fatalf("CreateRecommendation(%s): %v", id, err)
		}
	}
	// One record for a different user.
	if err := s.CreateRecommendation(ctx, makeTestRecommendation("rec-x", 2, base)); err != nil {
		t.Fatalf("CreateRecommendation(rec-x): %v", err)
	}

	recs, err := s.ListRecommendationsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecommendationsByUser: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	// Newest first.
	if recs[0].ID != "rec-c" || recs[2].ID != "rec-a" {
		t.Errorf("order: first=%s last=%s", recs[0].ID, recs[2].ID)
	}
}

func TestDeleteRecommendation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := makeTestRecommendation("rec-abc", 1, time.Now())
	if err := s.CreateRecommendation(ctx, rec); err != nil {
		t.Fatalf("CreateRecommendation: %v", err)
	}

	if err := s.DeleteRecommendation(ctx, "rec-abc"); err != nil {
		t.Fatalf("DeleteRecommendation: %v", err)
	}

	if _, err := s.GetRecommendation(ctx, "rec-abc"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	recs, err := s.ListRecommendationsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecommendationsByUser: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations after delete", len(recs))
	}

	if err := s.DeleteRecommendation(ctx, "rec-abc"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
