package handlers

import (
	"net/http"

	"legaldocs_api_go/db"
	"legaldocs_api_go/middleware"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler returns the caller's own profile
// GET /api/profile
func GetProfileHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfileHandler applies a partial update to the caller's profile
// PATCH /api/profile
func UpdateProfileHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var update services.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	updated, err := services.UpdateProfile(db.DB, user.ID, update)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}
