package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/ratelimit"
	"github.com/compassreads/compass-server/internal/search"
	"github.com/compassreads/compass-server/internal/service"
	"github.com/compassreads/compass-server/internal/store/docstore"
	"github.com/compassreads/compass-server/internal/store/sqlite"
	"github.com/compassreads/compass-server/internal/validation"
)

const testSessionKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

// testServer wires the full handler stack over real stores in temp
// directories.
type testServer struct {
	server  *Server
	catalog *sqlite.Store
	docs    *docstore.Store
	gateway *stubGateway
}

// stubGateway answers recommendation calls with canned IDs.
type stubGateway struct {
	ids   []int64
	err   error
	calls int
}

func (g *stubGateway) SimilarBooks(_ context.Context, _ []string, _ bool) ([]int64, error) {
	g.calls++
	return g.ids, g.err
}

func (g *stubGateway) BySubGenre(_ context.Context, _ string) ([]int64, error) {
	g.calls++
	return g.ids, g.err
}

var testBooks = []*domain.Book{
	{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", CoverLink: "c1", SubGenres: "High Fantasy"},
	{ID: 2, Title: "Dune", Author: "Frank Herbert", CoverLink: "c2", SubGenres: "Space Opera"},
	{ID: 3, Title: "Hyperion", Author: "Dan Simmons", CoverLink: "c3", SubGenres: "Space Opera"},
}

func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWithLimiter(t, ratelimit.New(1000, time.Minute, 1000))
}

func setupTestServerWithLimiter(t *testing.T, limiter *ratelimit.Limiter) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	docs, err := docstore.Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { docs.Close() })

	ctx := context.Background()
	for _, book := range testBooks {
		require.NoError(t, catalog.UpsertBook(ctx, book))
	}

	index, err := search.NewIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	require.NoError(t, index.IndexBooks(testBooks))

	codec, err := auth.NewCookieCodec(testSessionKey, 24*time.Hour)
	require.NoError(t, err)

	gateway := &stubGateway{}

	authService := service.NewAuthService(catalog, docs, 24*time.Hour, logger)
	userService := service.NewUserService(catalog, logger)
	bookService := service.NewBookService(catalog, docs, docs, index, logger)
	postService := service.NewPostService(docs, validation.New(), logger)
	recService := service.NewRecommendationService(gateway, docs, catalog, logger)

	server := NewServer(authService, userService, bookService, postService, recService, codec, limiter, Config{
		CORSOrigins: []string{"http://localhost:3000"},
	}, logger)

	return &testServer{server: server, catalog: catalog, docs: docs, gateway: gateway}
}

// do sends a request through the full middleware stack.
func (ts *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// sessionCookie extracts the session cookie from a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// register creates an account and returns a live session cookie.
func (ts *testServer) register(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}
