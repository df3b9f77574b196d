package handlers

import (
	"net/http"

	"legaldocs_api_go/db"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// CreateCaseHandler creates a new case with an allocated case number
// POST /api/cases
func CreateCaseHandler(c echo.Context) error {
	var input services.CaseInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.CreateCase(db.DB, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, caseRecord)
}

// ListCasesHandler lists cases with filtering, search and pagination
// GET /api/cases
func ListCasesHandler(c echo.Context) error {
	opts := parseListOptions(c, "status", "case_type", "priority", "client_id")

	cases, total, err := services.ListCases(db.DB, opts)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, listEnvelope(cases, total, opts))
}

// GetCaseHandler returns a single case with its client, assignee and documents
// GET /api/cases/:id
func GetCaseHandler(c echo.Context) error {
	caseRecord, err := services.GetCase(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, caseRecord)
}

// UpdateCaseHandler applies a partial update to a case
// PATCH /api/cases/:id
func UpdateCaseHandler(c echo.Context) error {
	var update services.CaseUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	caseRecord, err := services.UpdateCase(db.DB, c.Param("id"), update)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, caseRecord)
}

// CloseCaseHandler transitions a case to cerrado and stamps the closed date
// POST /api/cases/:id/close
func CloseCaseHandler(c echo.Context) error {
	caseRecord, err := services.CloseCase(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, caseRecord)
}

// DeleteCaseHandler removes a case together with its documents and blobs
// DELETE /api/cases/:id
func DeleteCaseHandler(c echo.Context) error {
	if err := services.DeleteCase(db.DB, services.Storage, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CaseStatisticsHandler returns grouped case counts
// GET /api/cases/statistics
func CaseStatisticsHandler(c echo.Context) error {
	stats, err := services.ComputeCaseStatistics(db.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
