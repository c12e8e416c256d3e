package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return jsonOK(c, http.StatusOK, echo.Map{"status": "ok", "app": "LinkedWeldJobs"})
}
