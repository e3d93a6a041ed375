package providers

import (
	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/config"
	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/store/docstore"
	"github.com/compassreads/compass-server/internal/store/sqlite"
)

// CatalogHandle wraps the SQLite store with shutdown capability.
type CatalogHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	return h.Close()
}

// ProvideCatalogStore provides the relational store (books, users).
func ProvideCatalogStore(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := sqlite.Open(cfg.Data.CatalogPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog store opened", "path", cfg.Data.CatalogPath)
	return &CatalogHandle{Store: store}, nil
}

// DocumentHandle wraps the Badger store with shutdown capability.
type DocumentHandle struct {
	*docstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *DocumentHandle) Shutdown() error {
	return h.Close()
}

// ProvideDocumentStore provides the document store (posts, favorites,
// recommendations, sessions).
func ProvideDocumentStore(i do.Injector) (*DocumentHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := docstore.Open(cfg.Data.DocumentPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Document store opened", "path", cfg.Data.DocumentPath)
	return &DocumentHandle{Store: store}, nil
}
