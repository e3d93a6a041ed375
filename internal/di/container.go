// Package di provides dependency injection configuration for the Compass
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/config"
	"github.com/compassreads/compass-server/internal/di/providers"
	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/recommend"
	"github.com/compassreads/compass-server/internal/service"
	"github.com/compassreads/compass-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSessionKey)
	do.Provide(injector, providers.ProvideCookieCodec)
	do.Provide(injector, providers.ProvideValidator)

	// Datastores
	do.Provide(injector, providers.ProvideCatalogStore)
	do.Provide(injector, providers.ProvideDocumentStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Outbound gateway
	do.Provide(injector, providers.ProvideRecommendClient)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvidePostService)
	do.Provide(injector, providers.ProvideRecommendationService)

	// Workers
	do.Provide(injector, providers.ProvideAuthLimiter)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of the whole graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.SessionKey](injector)
	_ = do.MustInvoke[*auth.CookieCodec](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	_ = do.MustInvoke[*providers.CatalogHandle](injector)
	_ = do.MustInvoke[*providers.DocumentHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*recommend.Client](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.PostService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)

	_ = do.MustInvoke[*providers.AuthLimiterHandle](injector)
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
