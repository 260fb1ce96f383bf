package handler

import (
	"github.com/labstack/echo/v4"
)

// respondDrinks writes the success envelope shared by all drink responses.
func respondDrinks(c echo.Context, status int, drinks interface{}) error {
	return c.JSON(status, map[string]interface{}{
		jsonKeySuccess: true,
		jsonKeyDrinks:  drinks,
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		jsonKeySuccess: false,
		jsonKeyError:   status,
		jsonKeyMessage: message,
	})
}
