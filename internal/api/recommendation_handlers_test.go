package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendByTitles_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.ids = []int64{2, 3}

	rec := ts.do(t, http.MethodPost, "/api/recommendations/books", map[string]any{
		"user_id":             7,
		"book_titles":         []string{"The Hobbit"},
		"exclude_same_author": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		UserID          int64   `json:"user_id"`
		InputBookIDs    []int64 `json:"input_book_ids"`
		Recommendations []struct {
			ID            int64   `json:"id"`
			Title         string  `json:"title"`
			AverageRating float64 `json:"average_rating"`
		} `json:"recommendations"`
	}
	decodeBody(t, rec, &result)
	assert.Equal(t, int64(7), result.UserID)
	assert.Equal(t, []int64{1}, result.InputBookIDs)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Dune", result.Recommendations[0].Title)
}

func TestRecommendByTitles_TooManyTitles(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.ids = []int64{1}

	rec := ts.do(t, http.MethodPost, "/api/recommendations/books", map[string]any{
		"user_id":     7,
		"book_titles": []string{"a", "b", "c", "d"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "1 to 3 book titles are required.", body["message"])

	// The gateway was never consulted.
	assert.Zero(t, ts.gateway.calls)
}

func TestRecommendBySubGenre(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.ids = []int64{2, 3}

	rec := ts.do(t, http.MethodPost, "/api/recommendations/genre", map[string]any{
		"user_id":   7,
		"sub_genre": "Space Opera",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		InputSubGenre   string `json:"input_sub_genre"`
		Recommendations []struct {
			ID int64 `json:"id"`
		} `json:"recommendations"`
	}
	decodeBody(t, rec, &result)
	assert.Equal(t, "Space Opera", result.InputSubGenre)
	assert.Len(t, result.Recommendations, 2)

	rec = ts.do(t, http.MethodPost, "/api/recommendations/genre", map[string]any{
		"user_id": 7,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRecommendations(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.ids = []int64{2}

	// Empty history reads as not found.
	rec := ts.do(t, http.MethodGet, "/api/recommendations/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/recommendations/books", map[string]any{
		"user_id":     7,
		"book_titles": []string{"The Hobbit"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/recommendations/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var recs []struct {
		ID    string `json:"id"`
		Books []struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			CoverLink string `json:"cover_link"`
		} `json:"books"`
	}
	decodeBody(t, rec, &recs)
	require.Len(t, recs, 1)
	require.Len(t, recs[0].Books, 1)
	assert.Equal(t, "Dune", recs[0].Books[0].Title)

	rec = ts.do(t, http.MethodGet, "/api/recommendations/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRecommendation(t *testing.T) {
	ts := setupTestServer(t)
	ts.gateway.ids = []int64{2}

	rec := ts.do(t, http.MethodPost, "/api/recommendations/books", map[string]any{
		"user_id":     7,
		"book_titles": []string{"The Hobbit"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/recommendations/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recs []struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &recs)
	require.Len(t, recs, 1)

	rec = ts.do(t, http.MethodDelete, "/api/recommendations/"+recs[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "Recommendation deleted.", body["message"])

	// Malformed IDs are rejected before the store.
	rec = ts.do(t, http.MethodDelete, "/api/recommendations/bad-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
