package auth

import (
	"context"

	apperrors "drink-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// TokenVerifier is the contract the gate needs from the verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Middleware is the authorization gate. Require composes extraction,
// verification, and the permission check; the wrapped handler runs only if
// all three succeed, with the decoded claims available from the context.
type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

func (m *Middleware) Require(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := ExtractBearerToken(c.Request().Header.Get(headerAuthorization))
			if err != nil {
				return rejectAuth(c, err)
			}

			claims, err := m.verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return rejectAuth(c, err)
			}

			if err := CheckPermission(permission, claims); err != nil {
				return rejectAuth(c, err)
			}

			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// GetClaims returns the identity payload set by the gate.
func GetClaims(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	if !ok || claims == nil {
		return nil, apperrors.Unauthorized(msgClaimsNotInContext)
	}
	return claims, nil
}

// rejectAuth writes the structured rejection for an authorization failure.
// The wrapped handler is never invoked on this path.
func rejectAuth(c echo.Context, err error) error {
	authErr := AsAuthError(err)

	c.Logger().Warnf("authorization rejected: %v", authErr)

	return c.JSON(authErr.Status, map[string]interface{}{
		jsonKeySuccess: false,
		jsonKeyError:   authErr.Status,
		jsonKeyMessage: authErr.Description,
	})
}
