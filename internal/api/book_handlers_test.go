package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_FullCatalog(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/books/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var books []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	decodeBody(t, rec, &books)
	assert.Len(t, books, len(testBooks))
}

func TestGetBooksByIDs(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/books?ids=3,1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var books []struct {
		ID        int64  `json:"id"`
		Title     string `json:"title"`
		CoverLink string `json:"cover_link"`
	}
	decodeBody(t, rec, &books)
	require.Len(t, books, 2)
	// Response order follows the requested order.
	assert.Equal(t, int64(3), books[0].ID)
	assert.Equal(t, int64(1), books[1].ID)

	rec = ts.do(t, http.MethodGet, "/api/books?ids=1,x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBook_WithReviews(t *testing.T) {
	ts := setupTestServer(t)

	// No reviews yet: empty list, no userReview key.
	rec := ts.do(t, http.MethodGet, "/api/books/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	decodeBody(t, rec, &raw)
	assert.NotNil(t, raw["book"])
	reviews, ok := raw["reviews"].([]any)
	require.True(t, ok, "reviews must be a JSON array")
	assert.Empty(t, reviews)
	assert.NotContains(t, raw, "userReview")

	// A review by the session user is surfaced separately.
	cookie := ts.register(t, "reader@example.com", "Abcdef1!")

	rec = ts.do(t, http.MethodGet, "/api/users/checksession", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var check struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, rec, &check)

	rec = ts.do(t, http.MethodPost, "/api/posts", map[string]any{
		"title":   "A classic",
		"content": "Read it twice.",
		"user_id": check.User.ID,
		"book_id": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/books/1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Book struct {
			ID int64 `json:"id"`
		} `json:"book"`
		Reviews []struct {
			ID string `json:"id"`
		} `json:"reviews"`
		UserReview *struct {
			ID string `json:"id"`
		} `json:"userReview"`
	}
	decodeBody(t, rec, &detail)
	assert.Equal(t, int64(1), detail.Book.ID)
	require.Len(t, detail.Reviews, 1)
	require.NotNil(t, detail.UserReview)
	assert.Equal(t, detail.Reviews[0].ID, detail.UserReview.ID)

	// The same request without the cookie hides the userReview.
	rec = ts.do(t, http.MethodGet, "/api/books/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	raw = nil
	decodeBody(t, rec, &raw)
	assert.NotContains(t, raw, "userReview")
}

func TestGetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/books/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavorites_Flow(t *testing.T) {
	ts := setupTestServer(t)

	pair := map[string]int64{"book_id": 2, "user_id": 7}

	rec := ts.do(t, http.MethodPost, "/api/books/favorites/check", pair)
	require.Equal(t, http.StatusOK, rec.Code)
	var check map[string]bool
	decodeBody(t, rec, &check)
	assert.False(t, check["isFavorite"])

	rec = ts.do(t, http.MethodPost, "/api/books/favorites", pair)
	require.Equal(t, http.StatusOK, rec.Code)
	var fav struct {
		UserID int64 `json:"user_id"`
		BookID int64 `json:"book_id"`
	}
	decodeBody(t, rec, &fav)
	assert.Equal(t, int64(7), fav.UserID)
	assert.Equal(t, int64(2), fav.BookID)

	rec = ts.do(t, http.MethodPost, "/api/books/favorites/check", pair)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &check)
	assert.True(t, check["isFavorite"])

	rec = ts.do(t, http.MethodGet, "/api/books/favorites/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, rec, &books)
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)

	rec = ts.do(t, http.MethodDelete, "/api/books/favorites", pair)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/books/favorites/check", pair)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &check)
	assert.False(t, check["isFavorite"])
}

func TestRemoveFavorite_MissingPair(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodDelete, "/api/books/favorites", map[string]int64{
		"book_id": 2,
		"user_id": 7,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "Favorite not found", body["message"])
}

func TestListFavoriteBooks_Empty(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/books/favorites/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "No favorites found for this user.", body["message"])
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/books/search?q=dune", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	decodeBody(t, rec, &hits)
	require.NotEmpty(t, hits)
	assert.Equal(t, "Dune", hits[0].Title)

	rec = ts.do(t, http.MethodGet, "/api/books/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
