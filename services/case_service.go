package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

// CaseInput contains the fields accepted when opening a case. The case
// number is never part of the input; it is allocated at creation time.
type CaseInput struct {
	ClientID     string  `json:"client_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CaseType     string  `json:"case_type"`
	Priority     string  `json:"priority"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	Deadline     *string `json:"deadline"`   // YYYY-MM-DD
	AssignedToID *string `json:"assigned_to_id"`
}

// CaseUpdate contains the fields accepted on a partial update. The case
// number is immutable and the status cannot leave or reach cerrado here;
// that transition belongs to CloseCase.
type CaseUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CaseType     *string `json:"case_type"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	StartDate    *string `json:"start_date"`
	Deadline     *string `json:"deadline"`
	AssignedToID *string `json:"assigned_to_id"`
}

// CreateCase validates the input, allocates a case number and persists the
// case. Concurrent creations can race for the same candidate number; the
// unique index rejects the loser and allocation is retried up to
// CaseNumberMaxRetries times before escalating to a ConflictError.
func CreateCase(db *gorm.DB, input CaseInput) (*models.Case, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "is required"}
	}
	if !models.IsValidCaseType(input.CaseType) {
		return nil, &ValidationError{Field: "case_type", Message: "is not a valid case type"}
	}
	priority := input.Priority
	if priority == "" {
		priority = models.CasePriorityMedia
	}
	if !models.IsValidCasePriority(priority) {
		return nil, &ValidationError{Field: "priority", Message: "is not a valid priority"}
	}

	startDate, err := parseDate(input.StartDate, "start_date", true)
	if err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate(input.Deadline, "deadline")
	if err != nil {
		return nil, err
	}

	// The client must exist; a dangling reference is an input error, not a
	// not-found on the case operation.
	var client models.Client
	if err := db.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "client_id", Message: "references a client that does not exist"}
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	if input.AssignedToID != nil && *input.AssignedToID != "" {
		var assignee models.User
		if err := db.First(&assignee, "id = ?", *input.AssignedToID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "assigned_to_id", Message: "references a user that does not exist"}
			}
			return nil, fmt.Errorf("failed to fetch assignee: %w", err)
		}
	}

	caseRecord := &models.Case{
		ClientID:     input.ClientID,
		Title:        strings.TrimSpace(input.Title),
		Description:  SanitizeRichText(input.Description),
		CaseType:     input.CaseType,
		Status:       models.CaseStatusEnProceso,
		Priority:     priority,
		StartDate:    *startDate,
		Deadline:     deadline,
		AssignedToID: normalizeIDPtr(input.AssignedToID),
	}

	for attempt := 0; attempt < CaseNumberMaxRetries; attempt++ {
		number, err := GenerateCaseNumber(db)
		if err != nil {
			return nil, err
		}
		caseRecord.CaseNumber = number
		caseRecord.ID = ""

		err = db.Create(caseRecord).Error
		if err == nil {
			InvalidateDashboardCache()
			return caseRecord, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create case: %w", err)
		}
		// Lost the race for this number, re-derive and try again.
		log.Printf("case number collision on %s (attempt %d), retrying", number, attempt+1)
	}

	return nil, &ConflictError{
		Resource: "case",
		Message:  fmt.Sprintf("failed to allocate a unique case number after %d attempts", CaseNumberMaxRetries),
	}
}

// GetCase fetches a case with its client, assignee and documents
func GetCase(db *gorm.DB, id string) (*models.Case, error) {
	var caseRecord models.Case
	err := db.Preload("Client").Preload("AssignedTo").Preload("Documents").
		First(&caseRecord, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "case", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	return &caseRecord, nil
}

// UpdateCase applies a partial update to a case
func UpdateCase(db *gorm.DB, id string, update CaseUpdate) (*models.Case, error) {
	caseRecord, err := GetCase(db, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil && *update.Status != caseRecord.Status {
		if !models.IsValidCaseStatus(*update.Status) {
			return nil, &ValidationError{Field: "status", Message: "is not a valid status"}
		}
		if caseRecord.IsClosed() {
			return nil, &StateError{Message: "case is closed and its status cannot be changed"}
		}
		if *update.Status == models.CaseStatusCerrado {
			return nil, &StateError{Message: "cases are closed through the close operation, not a status update"}
		}
		caseRecord.Status = *update.Status
	}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
		}
		caseRecord.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		caseRecord.Description = SanitizeRichText(*update.Description)
	}
	if update.CaseType != nil {
		if !models.IsValidCaseType(*update.CaseType) {
			return nil, &ValidationError{Field: "case_type", Message: "is not a valid case type"}
		}
		caseRecord.CaseType = *update.CaseType
	}
	if update.Priority != nil {
		if !models.IsValidCasePriority(*update.Priority) {
			return nil, &ValidationError{Field: "priority", Message: "is not a valid priority"}
		}
		caseRecord.Priority = *update.Priority
	}
	if update.StartDate != nil {
		startDate, err := parseDate(*update.StartDate, "start_date", true)
		if err != nil {
			return nil, err
		}
		caseRecord.StartDate = *startDate
	}
	if update.Deadline != nil {
		deadline, err := parseOptionalDate(update.Deadline, "deadline")
		if err != nil {
			return nil, err
		}
		caseRecord.Deadline = deadline
	}
	if update.AssignedToID != nil {
		if *update.AssignedToID == "" {
			caseRecord.AssignedToID = nil
		} else {
			var assignee models.User
			if err := db.First(&assignee, "id = ?", *update.AssignedToID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, &ValidationError{Field: "assigned_to_id", Message: "references a user that does not exist"}
				}
				return nil, fmt.Errorf("failed to fetch assignee: %w", err)
			}
			caseRecord.AssignedToID = update.AssignedToID
		}
	}

	if err := db.Save(caseRecord).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	InvalidateDashboardCache()
	return caseRecord, nil
}

// CloseCase marks a case cerrado and stamps closed_date, the only path that
// sets either field. Closing an already closed case is a StateError and
// performs no mutation.
func CloseCase(db *gorm.DB, id string) (*models.Case, error) {
	caseRecord, err := GetCase(db, id)
	if err != nil {
		return nil, err
	}

	if caseRecord.IsClosed() {
		return nil, &StateError{Message: "case is already closed"}
	}

	today := startOfDay(time.Now().UTC())
	caseRecord.Status = models.CaseStatusCerrado
	caseRecord.ClosedDate = &today

	if err := db.Save(caseRecord).Error; err != nil {
		return nil, fmt.Errorf("failed to close case: %w", err)
	}

	InvalidateDashboardCache()
	return caseRecord, nil
}

// DeleteCase removes a case together with its documents and their stored
// files (cascade).
func DeleteCase(db *gorm.DB, storage StorageProvider, id string) error {
	caseRecord, err := GetCase(db, id)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("failed to delete case documents: %w", err)
		}
		if err := tx.Delete(caseRecord).Error; err != nil {
			return fmt.Errorf("failed to delete case: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Stored files are cleaned up after the rows are gone; a failed removal
	// leaves an orphaned blob, not a dangling row.
	for _, doc := range caseRecord.Documents {
		if err := storage.Delete(context.Background(), doc.FileKey); err != nil {
			log.Printf("Warning: failed to delete stored file %s: %v", doc.FileKey, err)
		}
	}

	InvalidateDashboardCache()
	return nil
}

// ListCases returns a page of cases plus the total count
func ListCases(db *gorm.DB, opts ListOptions) ([]models.Case, int64, error) {
	query, err := applyListOptions(db.Model(&models.Case{}), caseQuerySpec, opts)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	query, _, _ = paginate(query, opts)

	var cases []models.Case
	if err := query.Preload("Client").Preload("AssignedTo").Find(&cases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return cases, total, nil
}

// CaseStatistics holds the grouped case counts
type CaseStatistics struct {
	ByStatus   map[string]int64 `json:"by_status"`
	ByType     map[string]int64 `json:"by_type"`
	ByPriority map[string]int64 `json:"by_priority"`
	Total      int64            `json:"total"`
}

// ComputeCaseStatistics returns grouped counts of cases by status, type and
// priority plus the total.
func ComputeCaseStatistics(db *gorm.DB) (*CaseStatistics, error) {
	stats := &CaseStatistics{}
	var err error

	if stats.ByStatus, err = groupCounts(db, &models.Case{}, "status"); err != nil {
		return nil, err
	}
	if stats.ByType, err = groupCounts(db, &models.Case{}, "case_type"); err != nil {
		return nil, err
	}
	if stats.ByPriority, err = groupCounts(db, &models.Case{}, "priority"); err != nil {
		return nil, err
	}
	if err = db.Model(&models.Case{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}
	return stats, nil
}

func parseDate(value, field string, required bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return nil, &ValidationError{Field: field, Message: "is required"}
		}
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return &parsed, nil
}

func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	return parseDate(*value, field, false)
}

func normalizeIDPtr(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
