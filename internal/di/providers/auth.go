package providers

import (
	"github.com/samber/do/v2"

	"github.com/compassreads/compass-server/internal/auth"
	"github.com/compassreads/compass-server/internal/config"
)

// SessionKey is the hex-encoded session secret.
type SessionKey string

// ProvideSessionKey provides the session secret, loading or generating
// the on-disk key when none is configured.
func ProvideSessionKey(i do.Injector) (SessionKey, error) {
	cfg := do.MustInvoke[*config.Config](i)

	if cfg.Session.KeyHex != "" {
		return SessionKey(cfg.Session.KeyHex), nil
	}

	keyHex, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return "", err
	}
	return SessionKey(keyHex), nil
}

// ProvideCookieCodec provides the session cookie codec.
func ProvideCookieCodec(i do.Injector) (*auth.CookieCodec, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[SessionKey](i)

	return auth.NewCookieCodec(string(key), cfg.Session.Duration)
}
