package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for use with errors.Is()
var (
	ErrMissingHeader      = errors.New("authorization header missing")
	ErrMalformedHeader    = errors.New("authorization header malformed")
	ErrMalformedToken     = errors.New("token malformed")
	ErrKeySetUnavailable  = errors.New("key set unavailable")
	ErrKeyNotFound        = errors.New("signing key not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidClaims      = errors.New("invalid claims")
	ErrTokenUnparseable   = errors.New("token unparseable")
	ErrNoPermissionsClaim = errors.New("no permissions claim")
	ErrPermissionDenied   = errors.New("permission denied")
)

// AuthError is a structured authorization failure. Every failure produced
// by the extractor, resolver, verifier, or permission checker is one of
// these; the gate converts it into the rejection response.
type AuthError struct {
	Code        string
	Description string
	Status      int
	Err         error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Constructors, one per taxonomy entry.
func MissingHeader(desc string) *AuthError {
	return &AuthError{Code: "missing_header", Description: desc, Status: http.StatusUnauthorized, Err: ErrMissingHeader}
}

func MalformedHeader(desc string) *AuthError {
	return &AuthError{Code: "malformed_header", Description: desc, Status: http.StatusUnauthorized, Err: ErrMalformedHeader}
}

func MalformedToken(desc string) *AuthError {
	return &AuthError{Code: "malformed_token", Description: desc, Status: http.StatusUnauthorized, Err: ErrMalformedToken}
}

func KeySetUnavailable(desc string, err error) *AuthError {
	return &AuthError{Code: "key_set_unavailable", Description: desc, Status: http.StatusServiceUnavailable, Err: errors.Join(ErrKeySetUnavailable, err)}
}

func KeyNotFound(desc string) *AuthError {
	return &AuthError{Code: "key_not_found", Description: desc, Status: http.StatusBadRequest, Err: ErrKeyNotFound}
}

func TokenExpired(desc string) *AuthError {
	return &AuthError{Code: "token_expired", Description: desc, Status: http.StatusUnauthorized, Err: ErrTokenExpired}
}

func InvalidClaims(desc string) *AuthError {
	return &AuthError{Code: "invalid_claims", Description: desc, Status: http.StatusUnauthorized, Err: ErrInvalidClaims}
}

func TokenUnparseable(desc string) *AuthError {
	return &AuthError{Code: "token_unparseable", Description: desc, Status: http.StatusBadRequest, Err: ErrTokenUnparseable}
}

func NoPermissionsClaim(desc string) *AuthError {
	return &AuthError{Code: "no_permissions_claim", Description: desc, Status: http.StatusForbidden, Err: ErrNoPermissionsClaim}
}

func PermissionDenied(desc string) *AuthError {
	return &AuthError{Code: "permission_denied", Description: desc, Status: http.StatusForbidden, Err: ErrPermissionDenied}
}

// AsAuthError extracts an *AuthError from err. Failures that reach the gate
// without a taxonomy entry are treated as unauthorized rather than leaking
// internals.
func AsAuthError(err error) *AuthError {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	return &AuthError{
		Code:        "unauthorized",
		Description: msgAuthorizationFailed,
		Status:      http.StatusUnauthorized,
		Err:         err,
	}
}
