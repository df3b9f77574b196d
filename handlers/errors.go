package handlers

import (
	"errors"
	"net/http"

	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// serviceError translates service layer errors into JSON API responses.
// Unknown errors are logged and returned as a generic 500.
func serviceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":    conflictErr.Message,
			"resource": conflictErr.Resource,
		})
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error":    notFoundErr.Error(),
			"resource": notFoundErr.Resource,
		})
	}

	var permissionErr *services.PermissionError
	if errors.As(err, &permissionErr) {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"error": permissionErr.Message,
		})
	}

	var stateErr *services.StateError
	if errors.As(err, &stateErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": stateErr.Message,
		})
	}

	c.Logger().Error("unexpected service error: ", err)
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": "Internal server error",
	})
}
