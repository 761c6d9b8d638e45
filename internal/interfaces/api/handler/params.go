package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

func idParam(c echo.Context) (uint, bool) {
	return uintParam(c, "id")
}

func uintParam(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// timeQuery parses an RFC 3339 query parameter. Missing means zero.
func timeQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
