package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/service"
)

// writeError is the single place where domain failures become HTTP
// responses.  Typed errors map kind by kind onto a status code and a
// JSON message; anything unclassified is logged and reported as a
// generic 500 so internal detail never reaches the caller.
func writeError(c echo.Context, err error) error {
	if kind := service.KindOf(err); kind != 0 {
		return c.JSON(statusFor(kind), echo.Map{"error": err.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
