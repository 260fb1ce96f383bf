package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload decoded from a verified token. A nil
// Permissions slice means the token carried no permissions claim at all;
// an empty non-nil slice means the claim was present but empty.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func (c *Claims) HasPermissionsClaim() bool {
	return c.Permissions != nil
}

func (c *Claims) HasPermission(required string) bool {
	for _, p := range c.Permissions {
		if p == required {
			return true
		}
	}
	return false
}

// KeySetSource supplies the issuer's current signing keys.
type KeySetSource interface {
	KeySet(ctx context.Context) (KeySet, error)
	Invalidate()
}

// VerifierConfig is the server-side verification policy. The algorithm
// allow-set, audience, and issuer are never taken from the token itself.
type VerifierConfig struct {
	Issuer     string
	Audience   string
	Algorithms []string
}

// Verifier validates raw bearer tokens: signature against the resolved key
// set, then issuer, audience, and expiry.
type Verifier struct {
	cfg  VerifierConfig
	keys KeySetSource
}

func NewVerifier(cfg VerifierConfig, keys KeySetSource) *Verifier {
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = []string{jwt.SigningMethodRS256.Alg()}
	}

	return &Verifier{cfg: cfg, keys: keys}
}

// Verify returns the decoded claims for a valid token, or an *AuthError
// describing the first check that failed.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods(v.cfg.Algorithms),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
	)

	if _, err := parser.ParseWithClaims(raw, claims, v.signingKey(ctx)); err != nil {
		return nil, mapTokenError(err)
	}

	return claims, nil
}

// signingKey resolves the verification key for a token's unverified key ID.
// A key ID missing from the cached set triggers one invalidation and
// re-fetch so key rotation does not strand valid tokens.
func (v *Verifier) signingKey(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header[headerKeyID].(string)
		if !ok || kid == "" {
			return nil, MalformedToken(msgNoKeyID)
		}

		keys, err := v.keys.KeySet(ctx)
		if err != nil {
			return nil, err
		}

		if key, ok := keys[kid]; ok {
			return key, nil
		}

		v.keys.Invalidate()
		keys, err = v.keys.KeySet(ctx)
		if err != nil {
			return nil, err
		}

		if key, ok := keys[kid]; ok {
			return key, nil
		}

		return nil, KeyNotFound(msgKeyNotFound)
	}
}

func mapTokenError(err error) error {
	var authErr *AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired(msgTokenExpired)
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return InvalidClaims(msgInvalidClaims)
	default:
		return TokenUnparseable(msgTokenUnparseable)
	}
}
