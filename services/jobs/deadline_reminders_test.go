package jobs

import (
	"testing"
	"time"

	"legaldocs_api_go/config"
	"legaldocs_api_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupJobTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Case{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedCase(t *testing.T, db *gorm.DB, title string, deadline *time.Time, status string, assignedTo *string) *models.Case {
	t.Helper()
	client := &models.Client{
		FullName:             "Reminder Client",
		IdentificationNumber: "REM-" + title,
		Email:                "reminder@example.com",
		IsActive:             true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	caseRecord := &models.Case{
		ClientID:     client.ID,
		CaseNumber:   "CASE-2026-" + title,
		Title:        title,
		CaseType:     models.CaseTypeCivil,
		Status:       status,
		Priority:     models.CasePriorityMedia,
		StartDate:    time.Now().UTC().AddDate(0, -1, 0),
		Deadline:     deadline,
		AssignedToID: assignedTo,
	}
	if err := db.Create(caseRecord).Error; err != nil {
		t.Fatalf("failed to create case: %v", err)
	}
	return caseRecord
}

func TestSendDeadlineRemindersMarksCases(t *testing.T) {
	db := setupJobTestDB(t)
	cfg := &config.Config{EmailTestMode: true}

	lawyer := &models.User{
		Name:     "Laura Abogada",
		Email:    "laura@example.com",
		Password: "irrelevant",
		IsActive: true,
	}
	assert.NoError(t, db.Create(lawyer).Error)

	soon := time.Now().UTC().AddDate(0, 0, 2)
	far := time.Now().UTC().AddDate(0, 0, 20)

	due := seedCase(t, db, "0001", &soon, models.CaseStatusEnProceso, &lawyer.ID)
	outside := seedCase(t, db, "0002", &far, models.CaseStatusEnProceso, &lawyer.ID)
	unassigned := seedCase(t, db, "0003", &soon, models.CaseStatusEnProceso, nil)
	closed := seedCase(t, db, "0004", &soon, models.CaseStatusCerrado, &lawyer.ID)

	SendDeadlineReminders(db, cfg)

	var reloaded models.Case
	assert.NoError(t, db.First(&reloaded, "id = ?", due.ID).Error)
	assert.NotNil(t, reloaded.DeadlineReminderSentAt)

	for _, skipped := range []*models.Case{outside, unassigned, closed} {
		var skippedReloaded models.Case
		assert.NoError(t, db.First(&skippedReloaded, "id = ?", skipped.ID).Error)
		assert.Nil(t, skippedReloaded.DeadlineReminderSentAt, "case %s should not be reminded", skipped.Title)
	}
}

func TestSendDeadlineRemindersIsIdempotent(t *testing.T) {
	db := setupJobTestDB(t)
	cfg := &config.Config{EmailTestMode: true}

	lawyer := &models.User{
		Name:     "Pedro Abogado",
		Email:    "pedro@example.com",
		Password: "irrelevant",
		IsActive: true,
	}
	assert.NoError(t, db.Create(lawyer).Error)

	soon := time.Now().UTC().AddDate(0, 0, 1)
	due := seedCase(t, db, "0005", &soon, models.CaseStatusEnProceso, &lawyer.ID)

	SendDeadlineReminders(db, cfg)

	var afterFirst models.Case
	assert.NoError(t, db.First(&afterFirst, "id = ?", due.ID).Error)
	firstSentAt := afterFirst.DeadlineReminderSentAt
	assert.NotNil(t, firstSentAt)

	// A second run finds nothing to do and does not re-stamp
	SendDeadlineReminders(db, cfg)

	var afterSecond models.Case
	assert.NoError(t, db.First(&afterSecond, "id = ?", due.ID).Error)
	assert.Equal(t, firstSentAt.Unix(), afterSecond.DeadlineReminderSentAt.Unix())
}
