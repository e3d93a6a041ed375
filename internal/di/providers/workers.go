package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/logger"
	"github.com/compassreads/compass-server/internal/ratelimit"
)

// Auth endpoint throttle: ten attempts per minute per client IP.
const (
	authLimitEvents   = 10
	authLimitInterval = time.Minute
	authLimitBurst    = 5

	limiterPruneInterval   = 5 * time.Minute
	sessionCleanupInterval = time.Hour
)

// AuthLimiterHandle wraps the auth rate limiter with its prune loop.
type AuthLimiterHandle struct {
	*ratelimit.Limiter
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *AuthLimiterHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideAuthLimiter provides the rate limiter guarding the register and
// login endpoints, with a background loop that prunes idle buckets.
func ProvideAuthLimiter(i do.Injector) (*AuthLimiterHandle, error) {
	limiter := ratelimit.New(authLimitEvents, authLimitInterval, authLimitBurst)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(limiterPruneInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.Prune()
			case <-ctx.Done():
				return
			}
		}
	}()

	return &AuthLimiterHandle{Limiter: limiter, cancel: cancel}, nil
}

// SessionCleanupJob runs periodic expired-session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	docs := do.MustInvoke[*DocumentHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		// Initial cleanup on startup.
		if count, err := docs.DeleteExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := docs.DeleteExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}
