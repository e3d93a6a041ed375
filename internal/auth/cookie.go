package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenIssuer   = "compass-server"
	tokenAudience = "compass-web"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32
	keyHexSize   = 64
)

// CookieCodec seals session IDs into PASETO v4.local tokens for transport in
// the session cookie. The cookie is the only thing the client holds; the
// session record itself lives server-side.
type CookieCodec struct {
	symmetricKey paseto.V4SymmetricKey
	lifetime     time.Duration
}

// NewCookieCodec creates a codec from a hex-encoded 32-byte key.
func NewCookieCodec(keyHex string, lifetime time.Duration) (*CookieCodec, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("session key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid session key: %w", err)
	}

	return &CookieCodec{
		symmetricKey: key,
		lifetime:     lifetime,
	}, nil
}

// Seal wraps a session ID in an encrypted token for the cookie value.
func (c *CookieCodec) Seal(sessionID string) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(sessionID)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(c.lifetime))

	return token.V4Encrypt(c.symmetricKey, nil), nil
}

// Open verifies a cookie value and returns the session ID it carries.
// A forged, corrupted, or expired token fails here before any store lookup.
func (c *CookieCodec) Open(cookieValue string) (string, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(c.symmetricKey, cookieValue, nil)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	sessionID, err := token.GetSubject()
	if err != nil {
		return "", fmt.Errorf("session token missing subject: %w", err)
	}

	return sessionID, nil
}

// Lifetime returns the configured token lifetime.
func (c *CookieCodec) Lifetime() time.Duration {
	return c.lifetime
}
