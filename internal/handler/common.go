package handler // handler defines the HTTP handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/service"
)

// dbTimeout bounds every database-touching request.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getCaller builds the service-layer caller identity from the context
// values stored by the JWT middleware.
func getCaller(c echo.Context) (service.Caller, error) {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return service.Caller{}, errors.New("missing user_id in context")
	}
	role, _ := c.Get("role").(string)
	return service.Caller{ID: uid, Role: model.Role(role)}, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
