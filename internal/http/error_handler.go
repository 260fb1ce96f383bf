package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "drink-service/pkg/errors"
	"drink-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	jsonKeySuccess = "success"
	jsonKeyError   = "error"
	jsonKeyMessage = "message"
)

// CustomHTTPErrorHandler handles errors that escape handlers and middleware.
// Every response uses the same envelope as handler failures:
// {"success": false, "error": <status>, "message": <description>}.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = "resource not found"
		case errors.Is(err, apperrors.ErrUnauthorized):
			code = http.StatusUnauthorized
			message = "unauthorized"
		case errors.Is(err, apperrors.ErrConflict):
			code = http.StatusConflict
			message = "resource already exists"
		case errors.Is(err, apperrors.ErrUnavailable):
			code = http.StatusServiceUnavailable
			message = "upstream unavailable"
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && code < http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}

	logged := logger.Sanitize(err.Error())
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("internal_server_error request_id=%s status=%d error=%s", requestID, code, logged)
		message = "internal server error"
	} else {
		c.Logger().Warnf("client_error request_id=%s status=%d error=%s", requestID, code, logged)
	}

	if err := c.JSON(code, map[string]interface{}{
		jsonKeySuccess: false,
		jsonKeyError:   code,
		jsonKeyMessage: message,
	}); err != nil {
		c.Logger().Error(err)
	}
}
