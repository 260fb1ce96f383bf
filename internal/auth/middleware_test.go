package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejection struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func gateRequest(t *testing.T, m *Middleware, permission, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
	if authorization != "" {
		req.Header.Set(headerAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoked := false
	handler := func(c echo.Context) error {
		invoked = true
		// The gate must have stored the verified claims before here
		_, err := GetClaims(c)
		require.NoError(t, err)
		return c.String(http.StatusOK, "ok")
	}

	err := m.Require(permission)(handler)(c)
	require.NoError(t, err)
	return rec, invoked
}

func decodeRejection(t *testing.T, rec *httptest.ResponseRecorder) rejection {
	t.Helper()
	var r rejection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func TestMiddleware_AllowsAuthorizedRequest(t *testing.T) {
	verifier, key, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	raw := signToken(t, key, testKeyID, validClaims([]string{"get:drinks-detail"}))

	rec, invoked := gateRequest(t, m, "get:drinks-detail", "Bearer "+raw)
	assert.True(t, invoked)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	verifier, _, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	rec, invoked := gateRequest(t, m, "get:drinks-detail", "")
	assert.False(t, invoked)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeRejection(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusUnauthorized, body.Error)
	assert.Equal(t, msgMissingAuthorization, body.Message)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	verifier, _, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	rec, invoked := gateRequest(t, m, "get:drinks-detail", "Token abc")
	assert.False(t, invoked)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgBearerPrefixRequired, decodeRejection(t, rec).Message)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	verifier, _, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	rec, invoked := gateRequest(t, m, "get:drinks-detail", "Bearer garbage")
	assert.False(t, invoked)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgTokenUnparseable, decodeRejection(t, rec).Message)
}

func TestMiddleware_InsufficientPermission(t *testing.T) {
	verifier, key, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	raw := signToken(t, key, testKeyID, validClaims([]string{"get:drinks-detail"}))

	rec, invoked := gateRequest(t, m, "delete:drinks", "Bearer "+raw)
	assert.False(t, invoked)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgPermissionDenied, decodeRejection(t, rec).Message)
}

func TestMiddleware_TokenWithoutPermissionsClaim(t *testing.T) {
	verifier, key, _ := newTestVerifier(t)
	m := NewMiddleware(verifier)

	raw := signToken(t, key, testKeyID, validClaims(nil))

	rec, invoked := gateRequest(t, m, "get:drinks-detail", "Bearer "+raw)
	assert.False(t, invoked)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgNoPermissionsClaim, decodeRejection(t, rec).Message)
}

func TestGetClaims_NotSet(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetClaims(c)
	assert.Error(t, err)
}
