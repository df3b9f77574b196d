package services

import (
	"testing"
	"time"

	"legaldocs_api_go/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeDashboardStats(t *testing.T) {
	db := setupTestDB(t)

	active := createTestClient(t, db, "Active One")
	_, err := CreateClient(db, ClientInput{
		FullName:             "Inactive One",
		IdentificationNumber: "INACT-1",
		Email:                "inactive@example.com",
		IsActive:             boolPtr(false),
	})
	assert.NoError(t, err)

	createTestCase(t, db, active.ID, "Open matter")
	closedCase := createTestCase(t, db, active.ID, "Closed matter")
	_, err = CloseCase(db, closedCase.ID)
	assert.NoError(t, err)

	stats, err := ComputeDashboardStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalClients)
	assert.Equal(t, int64(1), stats.ActiveClients)
	assert.Equal(t, int64(1), stats.CasesByStatus[models.CaseStatusEnProceso])
	assert.Equal(t, int64(1), stats.CasesByStatus[models.CaseStatusCerrado])
	assert.Equal(t, int64(2), stats.CasesByType[models.CaseTypeCivil])
	assert.Len(t, stats.RecentCases, 2)
	assert.Equal(t, "Active One", stats.RecentCases[0].ClientName)
}

func TestDashboardUpcomingDeadlines(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Deadline Client")

	soon := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	far := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")

	within, err := CreateCase(db, CaseInput{
		ClientID:  client.ID,
		Title:     "Due soon",
		CaseType:  models.CaseTypeCivil,
		StartDate: "2026-01-01",
		Deadline:  &soon,
	})
	assert.NoError(t, err)
	_, err = CreateCase(db, CaseInput{
		ClientID:  client.ID,
		Title:     "Due far out",
		CaseType:  models.CaseTypeCivil,
		StartDate: "2026-01-01",
		Deadline:  &far,
	})
	assert.NoError(t, err)

	// A closed case inside the window is excluded
	closing, err := CreateCase(db, CaseInput{
		ClientID:  client.ID,
		Title:     "Closed but due",
		CaseType:  models.CaseTypeCivil,
		StartDate: "2026-01-01",
		Deadline:  &soon,
	})
	assert.NoError(t, err)
	_, err = CloseCase(db, closing.ID)
	assert.NoError(t, err)

	stats, err := ComputeDashboardStats(db)
	assert.NoError(t, err)
	assert.Len(t, stats.UpcomingDeadlines, 1)
	assert.Equal(t, within.ID, stats.UpcomingDeadlines[0].ID)
	assert.Equal(t, 3, stats.UpcomingDeadlines[0].DaysRemaining)
	assert.Equal(t, soon, stats.UpcomingDeadlines[0].Deadline)
}

func TestDashboardCacheLifecycle(t *testing.T) {
	db := setupTestDB(t)
	createTestClient(t, db, "Cached Client")

	first, err := GetDashboardStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalClients)

	// A second read within the TTL is served from the cache
	second, err := GetDashboardStats(db)
	assert.NoError(t, err)
	assert.Same(t, first, second)

	// Mutations invalidate, so the next read sees fresh data
	createTestClient(t, db, "Another Client")
	third, err := GetDashboardStats(db)
	assert.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int64(2), third.TotalClients)
}
