package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys must match the ones set by the JWT middleware.
const (
	contextUserID   = "userID"
	contextUserRole = "userRole"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// currentUserID reads the authenticated user's ID set by the JWT middleware.
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(contextUserID).(int64)
	return id
}

func currentUserRole(c echo.Context) string {
	role, _ := c.Get(contextUserRole).(string)
	return role
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func optionalQuery(c echo.Context, name string) *string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	return &raw
}
