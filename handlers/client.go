package handlers

import (
	"net/http"

	"legaldocs_api_go/db"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// CreateClientHandler creates a new client
// POST /api/clients
func CreateClientHandler(c echo.Context) error {
	var input services.ClientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	client, err := services.CreateClient(db.DB, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, client)
}

// ListClientsHandler lists clients with filtering, search and pagination
// GET /api/clients
func ListClientsHandler(c echo.Context) error {
	opts := parseListOptions(c, "is_active")

	clients, total, err := services.ListClients(db.DB, opts)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, listEnvelope(clients, total, opts))
}

// GetClientHandler returns a single client
// GET /api/clients/:id
func GetClientHandler(c echo.Context) error {
	client, err := services.GetClient(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// UpdateClientHandler applies a partial update to a client
// PATCH /api/clients/:id
func UpdateClientHandler(c echo.Context) error {
	var update services.ClientUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	client, err := services.UpdateClient(db.DB, c.Param("id"), update)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClientHandler removes a client without cases
// DELETE /api/clients/:id
func DeleteClientHandler(c echo.Context) error {
	if err := services.DeleteClient(db.DB, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetClientCasesHandler lists the cases belonging to a client
// GET /api/clients/:id/cases
func GetClientCasesHandler(c echo.Context) error {
	cases, err := services.GetClientCases(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}
