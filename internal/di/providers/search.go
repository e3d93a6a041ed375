package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/search"
)

// SearchIndexHandle wraps the in-memory catalog index with shutdown
// capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex builds the catalog search index from the book table.
// The catalog is read-only at runtime, so one build at startup suffices.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	catalog := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(log.Logger)
	if err != nil {
		return nil, err
	}

	books, err := catalog.ListBooks(context.Background())
	if err != nil {
		index.Close()
		return nil, err
	}
	if err := index.IndexBooks(books); err != nil {
		index.Close()
		return nil, err
	}

	return &SearchIndexHandle{Index: index}, nil
}
