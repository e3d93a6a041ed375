package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store/docstore"
	"github.com/compassreads/compass-server/internal/store/sqlite"
)

// testEnv wires real stores in temp directories for service tests.
type testEnv struct {
	catalog *sqlite.Store
	docs    *docstore.Store
	logger  *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"), logger)
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() { catalog.Close() })

	docs, err := docstore.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("open document store: %v", err)
	}
	t.Cleanup(func() { docs.Close() })

	return &testEnv{catalog: catalog, docs: docs, logger: logger}
}

func (e *testEnv) seedBook(t *testing.T, book *domain.Book) {
	t.Helper()
	if err := e.catalog.UpsertBook(context.Background(), book); err != nil {
		t.Fatalf("seed book %d: %v", book.ID, err)
	}
}

func (e *testEnv) authService() *AuthService {
	return NewAuthService(e.catalog, e.docs, 24*time.Hour, e.logger)
}
