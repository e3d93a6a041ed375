package recommend

import (
	"context"
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSimilarBooks(t *testing.T) {
	var gotPath string
	var gotBody similarBooksRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.UnmarshalRead(r.Body, &gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[7, 8, 9]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	ids, err := c.SimilarBooks(context.Background(), []string{"Dune", "Hyperion"}, true)
	if err != nil {
		t.Fatalf("SimilarBooks: %v", err)
	}

	if gotPath != "/recommend-similar-books" {
		t.Errorf("path: got %q", gotPath)
	}
	if len(gotBody.BookTitles) != 2 || gotBody.BookTitles[0] != "Dune" {
		t.Errorf("request titles: %v", gotBody.BookTitles)
	}
	if !gotBody.ExcludeSameAuthor {
		t.Error("exclude_same_author not forwarded")
	}
	if len(ids) != 3 || ids[0] != 7 {
		t.Errorf("ids: %v", ids)
	}
}

func TestBySubGenre(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend-books-by-sub-genre" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		var body bySubGenreRequest
		if err := json.UnmarshalRead(r.Body, &body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.SubGenre != "High Fantasy" {
			t.Errorf("sub_genre: got %q", body.SubGenre)
		}
		w.Write([]byte(`[1, 2]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())

	ids, err := c.BySubGenre(context.Background(), "High Fantasy")
	if err != nil {
		t.Fatalf("BySubGenre: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids: %v", ids)
	}
}

func TestClientErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, time.Second, testLogger())
			_, err := c.SimilarBooks(context.Background(), []string{"Dune"}, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	// A closed server to force a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	_, err := c.SimilarBooks(context.Background(), []string{"Dune"}, false)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}
