package services

import (
	"sync"
	"time"
)

// DashboardCacheTTL bounds how stale a cached dashboard view may be
const DashboardCacheTTL = 300 * time.Second

// dashboardCache is a cache-aside wrapper around the dashboard view: read
// through getCachedDashboardStats, fill with setCachedDashboardStats,
// invalidate from every entity-mutation path. The cache is advisory only;
// correctness never depends on it.
var dashboardCache struct {
	mu        sync.RWMutex
	stats     *DashboardStats
	expiresAt time.Time
}

func getCachedDashboardStats() *DashboardStats {
	dashboardCache.mu.RLock()
	defer dashboardCache.mu.RUnlock()

	if dashboardCache.stats == nil || time.Now().After(dashboardCache.expiresAt) {
		return nil
	}
	return dashboardCache.stats
}

func setCachedDashboardStats(stats *DashboardStats) {
	dashboardCache.mu.Lock()
	defer dashboardCache.mu.Unlock()

	dashboardCache.stats = stats
	dashboardCache.expiresAt = time.Now().Add(DashboardCacheTTL)
}

// InvalidateDashboardCache drops the cached dashboard view. Called by every
// client/case/document mutation so the next read recomputes.
func InvalidateDashboardCache() {
	dashboardCache.mu.Lock()
	defer dashboardCache.mu.Unlock()

	dashboardCache.stats = nil
}
