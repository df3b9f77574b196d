package handlers

import (
	"net/http"

	"legaldocs_api_go/db"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns the aggregated dashboard statistics
// GET /api/dashboard
func DashboardHandler(c echo.Context) error {
	stats, err := services.GetDashboardStats(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
