package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

const (
	// caseNumberMaxSequence is the highest sequence the 4-digit suffix can
	// hold. Allocation past this fails loudly instead of widening the
	// identifier format mid-year.
	caseNumberMaxSequence = 9999

	// CaseNumberMaxRetries bounds the allocation retry loop. The unique
	// index on case_number is the source of truth; a retry happens only
	// when a concurrent creation won the race for the same candidate.
	CaseNumberMaxRetries = 5
)

// GenerateCaseNumber derives the next case number for the current calendar
// year from persisted data. Format: CASE-YYYY-NNNN, sequence restarting at 1
// each year. No in-process counter is kept, so multiple server processes
// derive from the same state.
func GenerateCaseNumber(db *gorm.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("CASE-%d-", year)

	// The suffix is fixed-width zero-padded, so lexicographic order equals
	// numeric order and the greatest case_number carries the max sequence.
	var lastCase models.Case
	err := db.Where("case_number LIKE ?", prefix+"%").
		Order("case_number DESC").
		First(&lastCase).Error

	sequence := 1
	if err == nil {
		suffix := strings.TrimPrefix(lastCase.CaseNumber, prefix)
		lastSequence, parseErr := strconv.Atoi(suffix)
		if parseErr != nil {
			return "", fmt.Errorf("malformed case number %q: %w", lastCase.CaseNumber, parseErr)
		}
		sequence = lastSequence + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to query max case number: %w", err)
	}

	if sequence > caseNumberMaxSequence {
		return "", &ConflictError{
			Resource: "case",
			Message:  fmt.Sprintf("case number sequence exhausted for %d", year),
		}
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}
