package services

import (
	"fmt"
	"testing"
	"time"

	"legaldocs_api_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the same error
// translation the real connection uses, so duplicate-key handling behaves
// like production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.Case{},
		&models.Document{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	InvalidateDashboardCache()
	return db
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func createTestClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client, err := CreateClient(db, ClientInput{
		FullName:             name,
		IdentificationNumber: fmt.Sprintf("ID-%s-%d", name, time.Now().UnixNano()),
		Email:                "client@example.com",
	})
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

func createTestCase(t *testing.T, db *gorm.DB, clientID, title string) *models.Case {
	t.Helper()
	caseRecord, err := CreateCase(db, CaseInput{
		ClientID:  clientID,
		Title:     title,
		CaseType:  models.CaseTypeCivil,
		StartDate: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("failed to create test case: %v", err)
	}
	return caseRecord
}

func createTestUser(t *testing.T, db *gorm.DB, email string, staff bool) *models.User {
	t.Helper()
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: hash,
		IsStaff:  staff,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
