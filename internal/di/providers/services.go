package providers

import (
	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/config"
	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/recommend"
	"github.com/compassreads/compass-server/internal/service"
	"github.com/compassreads/compass-server/internal/validation"
)

// ProvideRecommendClient provides the outbound gateway to the external
// scoring service.
func ProvideRecommendClient(i do.Injector) (*recommend.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return recommend.New(cfg.Recommender.BaseURL, cfg.Recommender.Timeout, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	catalog := do.MustInvoke[*CatalogHandle](i)
	docs := do.MustInvoke[*DocumentHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(catalog.Store, docs.Store, cfg.Session.Duration, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	catalog := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(catalog.Store, log.Logger), nil
}

// ProvideBookService provides the catalog and favorites service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	catalog := do.MustInvoke[*CatalogHandle](i)
	docs := do.MustInvoke[*DocumentHandle](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(catalog.Store, docs.Store, docs.Store, index.Index, log.Logger), nil
}

// ProvidePostService provides the review service.
func ProvidePostService(i do.Injector) (*service.PostService, error) {
	docs := do.MustInvoke[*DocumentHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPostService(docs.Store, validator, log.Logger), nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	gateway := do.MustInvoke[*recommend.Client](i)
	catalog := do.MustInvoke[*CatalogHandle](i)
	docs := do.MustInvoke[*DocumentHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(gateway, docs.Store, catalog.Store, log.Logger), nil
}
