package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/api"
	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/config"
	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the
// background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	codec := do.MustInvoke[*auth.CookieCodec](i)
	limiter := do.MustInvoke[*AuthLimiterHandle](i)

	authService := do.MustInvoke[*service.AuthService](i)
	userService := do.MustInvoke[*service.UserService](i)
	bookService := do.MustInvoke[*service.BookService](i)
	postService := do.MustInvoke[*service.PostService](i)
	recService := do.MustInvoke[*service.RecommendationService](i)

	handler := api.NewServer(authService, userService, bookService, postService, recService, codec, limiter.Limiter, api.Config{
		CORSOrigins:  cfg.Server.CORSOrigins,
		SecureCookie: cfg.Session.SecureCookie,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
