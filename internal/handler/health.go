package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home handles GET / and returns the service banner.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "venue-artist-booking",
		"message": "directory of venues, artists and the shows that pair them",
	})
}
