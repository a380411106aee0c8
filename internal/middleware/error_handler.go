package middleware

import (
	"errors"
	"net/http"

	"github.com/hotelhub/booking-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every handler error as the service's JSON error
// envelope. Non-string echo.HTTPError messages and unwrapped errors fall
// back to err.Error() so the envelope always carries a message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
