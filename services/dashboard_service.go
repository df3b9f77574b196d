package services

import (
	"fmt"
	"time"

	"legaldocs_api_go/models"

	"gorm.io/gorm"
)

// upcomingDeadlineWindow is the horizon for the dashboard deadline list
const upcomingDeadlineWindow = 7 * 24 * time.Hour

// RecentCase is the dashboard projection of a recently opened case
type RecentCase struct {
	ID         string `json:"id"`
	CaseNumber string `json:"case_number"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ClientName string `json:"client_name"`
}

// UpcomingDeadline is the dashboard projection of a case due within the
// deadline window
type UpcomingDeadline struct {
	ID            string `json:"id"`
	CaseNumber    string `json:"case_number"`
	Title         string `json:"title"`
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"days_remaining"`
	ClientName    string `json:"client_name"`
}

// DashboardStats aggregates the reporting view over clients, cases and
// documents. Counts are computed per query; the view trades snapshot
// isolation for simplicity, which is acceptable for reporting.
type DashboardStats struct {
	TotalClients      int64              `json:"total_clients"`
	ActiveClients     int64              `json:"active_clients"`
	CasesByStatus     map[string]int64   `json:"cases_by_status"`
	CasesByType       map[string]int64   `json:"cases_by_type"`
	RecentCases       []RecentCase       `json:"recent_cases"`
	DocumentsByType   map[string]int64   `json:"documents_by_type"`
	UpcomingDeadlines []UpcomingDeadline `json:"upcoming_deadlines"`
}

// ComputeDashboardStats builds the dashboard view from the current data.
// Most callers should go through GetDashboardStats, which adds caching.
func ComputeDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{
		RecentCases:       []RecentCase{},
		UpcomingDeadlines: []UpcomingDeadline{},
	}

	if err := db.Model(&models.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if err := db.Model(&models.Client{}).Where("is_active = ?", true).Count(&stats.ActiveClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}

	var err error
	if stats.CasesByStatus, err = groupCounts(db, &models.Case{}, "status"); err != nil {
		return nil, err
	}
	if stats.CasesByType, err = groupCounts(db, &models.Case{}, "case_type"); err != nil {
		return nil, err
	}
	if stats.DocumentsByType, err = groupCounts(db, &models.Document{}, "document_type"); err != nil {
		return nil, err
	}

	var recentCases []models.Case
	if err := db.Preload("Client").Order("created_at DESC").Limit(5).Find(&recentCases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent cases: %w", err)
	}
	for _, c := range recentCases {
		stats.RecentCases = append(stats.RecentCases, RecentCase{
			ID:         c.ID,
			CaseNumber: c.CaseNumber,
			Title:      c.Title,
			Status:     c.Status,
			ClientName: c.Client.FullName,
		})
	}

	today := startOfDay(time.Now().UTC())
	windowEnd := today.Add(upcomingDeadlineWindow)

	var dueCases []models.Case
	err = db.Preload("Client").
		Where("deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", today, windowEnd).
		Where("status <> ?", models.CaseStatusCerrado).
		Order("deadline ASC").
		Find(&dueCases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming deadlines: %w", err)
	}
	for _, c := range dueCases {
		stats.UpcomingDeadlines = append(stats.UpcomingDeadlines, UpcomingDeadline{
			ID:            c.ID,
			CaseNumber:    c.CaseNumber,
			Title:         c.Title,
			Deadline:      c.Deadline.Format("2006-01-02"),
			DaysRemaining: int(c.Deadline.Sub(today).Hours() / 24),
			ClientName:    c.Client.FullName,
		})
	}

	return stats, nil
}

// GetDashboardStats returns the dashboard view, served from the cache while
// fresh and recomputed on miss.
func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	if cached := getCachedDashboardStats(); cached != nil {
		return cached, nil
	}

	stats, err := ComputeDashboardStats(db)
	if err != nil {
		return nil, err
	}
	setCachedDashboardStats(stats)
	return stats, nil
}

// groupCounts runs a grouped count over one column and returns only the
// values actually present.
func groupCounts(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	var rows []struct {
		Value string
		Count int64
	}
	err := db.Model(model).
		Select(column + " as value, count(*) as count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}
