package handlers

import (
	"errors"
	"net/http"
	"strings"

	"legaldocs_api_go/db"
	"legaldocs_api_go/middleware"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// RegisterHandler creates a new user account
// POST /api/auth/register
func RegisterHandler(c echo.Context) error {
	var input services.RegisterInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := services.RegisterUser(db.DB, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// LoginHandler authenticates a user and issues a session token
// POST /api/auth/login
func LoginHandler(c echo.Context) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	user, err := services.AuthenticateUser(db.DB, input.Email, input.Password)
	if err != nil {
		// Failed logins are a credentials problem, not an authorization one
		var permErr *services.PermissionError
		if errors.As(err, &permErr) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": permErr.Message,
			})
		}
		return serviceError(c, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		c.Logger().Error("failed to create session: ", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}

// LogoutHandler deletes the caller's session
// POST /api/auth/logout
func LogoutHandler(c echo.Context) error {
	session := middleware.GetCurrentSession(c)
	if session != nil {
		if err := services.DeleteSession(db.DB, session.Token); err != nil {
			c.Logger().Error("failed to delete session: ", err)
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out",
	})
}

// MeHandler returns the authenticated user
// GET /api/auth/me
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}
