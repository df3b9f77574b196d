package handlers

import (
	"net/http"

	"legaldocs_api_go/db"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

var searchService *services.SearchService

// InitSearchService initializes the search service
func InitSearchService() {
	searchService = services.NewSearchService(db.DB)
}

// SearchHandler performs a global search across clients, cases and documents
// GET /api/search?q=keyword
func SearchHandler(c echo.Context) error {
	results, err := searchService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}
