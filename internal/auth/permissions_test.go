package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPermission(t *testing.T) {
	t.Run("nil claims", func(t *testing.T) {
		err := CheckPermission("get:drinks-detail", nil)
		assert.ErrorIs(t, err, ErrNoPermissionsClaim)
	})

	t.Run("permissions claim absent", func(t *testing.T) {
		err := CheckPermission("get:drinks-detail", &Claims{})
		assert.ErrorIs(t, err, ErrNoPermissionsClaim)
	})

	t.Run("permissions claim empty", func(t *testing.T) {
		// An empty list is a present claim; the failure is a denial,
		// not a missing claim.
		err := CheckPermission("get:drinks-detail", &Claims{Permissions: []string{}})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("permission not granted", func(t *testing.T) {
		claims := &Claims{Permissions: []string{"get:drinks-detail"}}
		err := CheckPermission("delete:drinks", claims)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("permission granted", func(t *testing.T) {
		claims := &Claims{Permissions: []string{"get:drinks-detail", "post:drinks"}}
		assert.NoError(t, CheckPermission("post:drinks", claims))
	})
}

func TestCheckPermission_StatusCodes(t *testing.T) {
	missing := AsAuthError(CheckPermission("post:drinks", &Claims{}))
	denied := AsAuthError(CheckPermission("post:drinks", &Claims{Permissions: []string{}}))

	assert.Equal(t, 403, missing.Status)
	assert.Equal(t, 403, denied.Status)
	assert.NotEqual(t, missing.Code, denied.Code)
}
