// Package handler defines the HTTP handlers behind the versioned API.
// Handlers bind and validate input, call repositories or services with a
// bounded context, and translate domain errors to JSON responses. The
// caller's tenant always comes from the verified JWT claims in the
// request context, never from the URL or body.
package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds repository calls made from handlers.
const dbTimeout = 5 * time.Second

// reqContext derives the bounded context handlers pass to repositories.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID extracts the authenticated user's ID from the context.
func getUserID(c echo.Context) (uint64, error) {
	return ctxUint64(c, "user_id")
}

// getCompanyID extracts the caller's tenant from the context. Zero means
// the user is not bound to a company (super admin).
func getCompanyID(c echo.Context) (uint64, error) {
	v := c.Get("company_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case float64:
		return uint64(t), nil
	}
	return 0, errors.New("invalid company_id in context")
}

func ctxUint64(c echo.Context, key string) (uint64, error) {
	v := c.Get(key)
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + key + " in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
