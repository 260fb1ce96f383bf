package handler

import (
	"errors"
	"net/http"

	apperrors "drink-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// mapToPublicError maps internal errors to public-facing HTTP status codes
// and messages without exposing internal detail.
func mapToPublicError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "resource already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondMappedError(c echo.Context, err error) error {
	status, msg := mapToPublicError(err)
	return respondError(c, status, msg)
}

func handleHTTPError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, msg)
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
