package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"legaldocs_api_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var caseReportHeader = []string{
	"Case Number", "Title", "Client", "Client ID Number", "Type",
	"Status", "Priority", "Start Date", "Deadline", "Closed Date", "Assigned To",
}

// CaseReportFilters narrows the cases included in an export
type CaseReportFilters struct {
	Status    string
	CaseType  string
	ClientID  string
	StartDate string // YYYY-MM-DD, inclusive lower bound on start_date
	EndDate   string // YYYY-MM-DD, inclusive upper bound on start_date
}

// FetchReportCases loads the cases matching the report filters with their
// client and assignee, ordered by case number.
func FetchReportCases(db *gorm.DB, filters CaseReportFilters) ([]models.Case, error) {
	query := db.Model(&models.Case{}).Preload("Client").Preload("AssignedTo")

	if filters.Status != "" {
		if !models.IsValidCaseStatus(filters.Status) {
			return nil, &ValidationError{Field: "status", Message: "is not a valid status"}
		}
		query = query.Where("status = ?", filters.Status)
	}
	if filters.CaseType != "" {
		if !models.IsValidCaseType(filters.CaseType) {
			return nil, &ValidationError{Field: "case_type", Message: "is not a valid case type"}
		}
		query = query.Where("case_type = ?", filters.CaseType)
	}
	if filters.ClientID != "" {
		query = query.Where("client_id = ?", filters.ClientID)
	}
	if filters.StartDate != "" {
		startDate, err := parseDate(filters.StartDate, "start_date", false)
		if err != nil {
			return nil, err
		}
		query = query.Where("start_date >= ?", startDate)
	}
	if filters.EndDate != "" {
		endDate, err := parseDate(filters.EndDate, "end_date", false)
		if err != nil {
			return nil, err
		}
		query = query.Where("start_date <= ?", endDate)
	}

	var cases []models.Case
	if err := query.Order("case_number ASC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch report cases: %w", err)
	}
	return cases, nil
}

// BuildCasesWorkbook renders cases into an xlsx workbook
func BuildCasesWorkbook(cases []models.Case) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Cases"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, title := range caseReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, c := range cases {
		row := caseReportRow(c)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// WriteCasesCSV streams cases as CSV
func WriteCasesCSV(w io.Writer, cases []models.Case) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(caseReportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range cases {
		if err := writer.Write(caseReportRow(c)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func caseReportRow(c models.Case) []string {
	deadline := ""
	if c.Deadline != nil {
		deadline = c.Deadline.Format("2006-01-02")
	}
	closedDate := ""
	if c.ClosedDate != nil {
		closedDate = c.ClosedDate.Format("2006-01-02")
	}
	assignedTo := ""
	if c.AssignedTo != nil {
		assignedTo = c.AssignedTo.Name
	}
	return []string{
		c.CaseNumber,
		c.Title,
		c.Client.FullName,
		c.Client.IdentificationNumber,
		c.CaseType,
		c.Status,
		c.Priority,
		c.StartDate.Format("2006-01-02"),
		deadline,
		closedDate,
		assignedTo,
	}
}
