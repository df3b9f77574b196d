package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"legaldocs_api_go/db"
	"legaldocs_api_go/middleware"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// CreateDocumentHandler uploads a file and creates its document record.
// Expects multipart form data with a "file" part and metadata fields.
// POST /api/documents
func CreateDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file is required")
	}

	input := services.DocumentInput{
		CaseID:       c.FormValue("case_id"),
		DocumentType: c.FormValue("document_type"),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
	}
	if confidential, err := strconv.ParseBool(c.FormValue("is_confidential")); err == nil {
		input.IsConfidential = confidential
	}

	document, err := services.CreateDocument(c.Request().Context(), db.DB, services.Storage, input, fileHeader, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, document)
}

// ListDocumentsHandler lists documents with filtering, search and pagination
// GET /api/documents
func ListDocumentsHandler(c echo.Context) error {
	opts := parseListOptions(c, "case_id", "document_type", "is_confidential")

	documents, total, err := services.ListDocuments(db.DB, opts)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, listEnvelope(documents, total, opts))
}

// GetDocumentHandler returns a single document record
// GET /api/documents/:id
func GetDocumentHandler(c echo.Context) error {
	document, err := services.GetDocument(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, document)
}

// UpdateDocumentHandler updates document metadata and optionally replaces
// the stored file when a multipart "file" part is present.
// PATCH /api/documents/:id
func UpdateDocumentHandler(c echo.Context) error {
	var update services.DocumentUpdate
	var fileHeader *multipart.FileHeader

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		// Multipart update: metadata comes from form values
		if fh, err := c.FormFile("file"); err == nil {
			fileHeader = fh
		}
		if v := c.FormValue("document_type"); v != "" {
			update.DocumentType = &v
		}
		if v := c.FormValue("title"); v != "" {
			update.Title = &v
		}
		if v := c.FormValue("description"); v != "" {
			update.Description = &v
		}
		if v := c.FormValue("is_confidential"); v != "" {
			if confidential, err := strconv.ParseBool(v); err == nil {
				update.IsConfidential = &confidential
			}
		}
	} else {
		if err := c.Bind(&update); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}
	}

	document, err := services.UpdateDocument(c.Request().Context(), db.DB, services.Storage, c.Param("id"), update, fileHeader)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, document)
}

// DeleteDocumentHandler removes a document; only the uploader or staff may
// DELETE /api/documents/:id
func DeleteDocumentHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := services.DeleteDocument(c.Request().Context(), db.DB, services.Storage, c.Param("id"), user); err != nil {
		return serviceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DownloadDocumentHandler streams the stored file back to the caller
// GET /api/documents/:id/download
func DownloadDocumentHandler(c echo.Context) error {
	document, reader, contentType, err := services.DownloadDocument(c.Request().Context(), db.DB, services.Storage, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, document.FileOriginalName))
	return c.Stream(http.StatusOK, contentType, reader)
}
