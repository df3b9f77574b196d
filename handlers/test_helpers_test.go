package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"legaldocs_api_go/db"
	"legaldocs_api_go/middleware"
	"legaldocs_api_go/models"
	"legaldocs_api_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.Case{},
		&models.Document{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Handlers read the package-level connection
	db.DB = testDB
	services.InvalidateDashboardCache()
	InitSearchService()

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func authenticateAs(t *testing.T, c echo.Context, testDB *gorm.DB, email string, staff bool) *models.User {
	t.Helper()

	hash, err := services.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     "Handler User",
		Email:    email,
		Password: hash,
		IsStaff:  staff,
		IsActive: true,
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeySession, session)
	return user
}

func seedClient(t *testing.T, testDB *gorm.DB, name, idNumber string) *models.Client {
	t.Helper()
	client, err := services.CreateClient(testDB, services.ClientInput{
		FullName:             name,
		IdentificationNumber: idNumber,
		Email:                "seed@example.com",
	})
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return client
}

func seedCase(t *testing.T, testDB *gorm.DB, clientID, title string) *models.Case {
	t.Helper()
	caseRecord, err := services.CreateCase(testDB, services.CaseInput{
		ClientID:  clientID,
		Title:     title,
		CaseType:  models.CaseTypeCivil,
		StartDate: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
	return caseRecord
}
