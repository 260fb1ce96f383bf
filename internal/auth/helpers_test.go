package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://dev-drinks.example.com/"
	testAudience = "drinks-api"
	testKeyID    = "test-key-1"
)

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// signToken produces an RS256 token carrying the given claims and key ID.
func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header[headerKeyID] = kid
	}
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

type tokenClaims struct {
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

func validClaims(permissions []string) tokenClaims {
	return tokenClaims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   "auth0|barista",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

// buildJWKSBody serializes a JWKS document for the given public keys.
func buildJWKSBody(t *testing.T, keys map[string]*rsa.PublicKey) []byte {
	t.Helper()
	doc := jwksDocument{}
	for kid, pub := range keys {
		doc.Keys = append(doc.Keys, jwksKey{
			Kty: rsaKeyType,
			Kid: kid,
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	return body
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// staticKeySource serves a fixed key set and records invalidations.
type staticKeySource struct {
	keys        KeySet
	err         error
	invalidated int
}

func (s *staticKeySource) KeySet(_ context.Context) (KeySet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.keys, nil
}

func (s *staticKeySource) Invalidate() {
	s.invalidated++
}
