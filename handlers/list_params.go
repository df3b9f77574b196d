package handlers

import (
	"strconv"

	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// parseListOptions extracts filter/search/sort/pagination query parameters.
// filterFields names the parameters treated as filters; everything the
// service allow-list rejects still fails there with a ValidationError.
func parseListOptions(c echo.Context, filterFields ...string) services.ListOptions {
	opts := services.ListOptions{
		Filters: make(map[string]string),
		Search:  c.QueryParam("search"),
		OrderBy: c.QueryParam("ordering"),
	}

	for _, field := range filterFields {
		if value := c.QueryParam(field); value != "" {
			opts.Filters[field] = value
		}
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && size > 0 {
		opts.PageSize = size
	}

	return opts
}

// listEnvelope wraps a collection page in the standard pagination envelope
func listEnvelope(data interface{}, total int64, opts services.ListOptions) map[string]interface{} {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	if pageSize > services.MaxPageSize {
		pageSize = services.MaxPageSize
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return map[string]interface{}{
		"data": data,
		"pagination": map[string]interface{}{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}
