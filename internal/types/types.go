package types

import (
	"drink-service/internal/audit"

	"github.com/labstack/echo/v4"
)

// AuditLogger defines audit logging operations
type AuditLogger interface {
	LogDrinkMutation(c echo.Context, action audit.Action, drinkID int64, status audit.Status, detail map[string]any) error
}
