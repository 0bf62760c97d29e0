package httpserver

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func formValue(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}
