package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"legaldocs_api_go/db"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
)

// ExportCasesHandler exports the filtered case list as xlsx or csv
// GET /api/reports/cases?format=xlsx|csv
func ExportCasesHandler(c echo.Context) error {
	filters := services.CaseReportFilters{
		Status:    c.QueryParam("status"),
		CaseType:  c.QueryParam("case_type"),
		ClientID:  c.QueryParam("client_id"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}

	cases, err := services.FetchReportCases(db.DB, filters)
	if err != nil {
		return serviceError(c, err)
	}

	stamp := time.Now().Format("20060102_150405")

	format := c.QueryParam("format")
	if format == "" {
		format = "xlsx"
	}

	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := services.WriteCasesCSV(&buf, cases); err != nil {
			c.Logger().Error("failed to build csv report: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
		}
		c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cases_report_%s.csv", stamp))
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())

	case "xlsx":
		workbook, err := services.BuildCasesWorkbook(cases)
		if err != nil {
			c.Logger().Error("failed to build xlsx report: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
		}
		var buf bytes.Buffer
		if err := workbook.Write(&buf); err != nil {
			c.Logger().Error("failed to write xlsx report: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
		}
		c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cases_report_%s.xlsx", stamp))
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported format: "+format)
	}
}

// CaseSummaryPDFHandler renders a printable summary of a single case
// GET /api/cases/:id/summary.pdf
func CaseSummaryPDFHandler(c echo.Context) error {
	caseRecord, err := services.GetCase(db.DB, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	pdfBytes, err := services.GenerateCaseSummaryPDF(caseRecord)
	if err != nil {
		c.Logger().Error("failed to generate case summary pdf: ", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_summary.pdf", caseRecord.CaseNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}
