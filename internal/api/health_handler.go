package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/admetrics/internal/pkg/httputil"
)

// HealthStatus represents the overall health of the system.
type HealthStatus struct {
	Status        string     `json:"status"`
	Timestamp     time.Time  `json:"timestamp"`
	Uptime        string     `json:"uptime"`
	Sources       int        `json:"sources"`
	ActiveSources int        `json:"active_sources"`
	StoredRecords int        `json:"stored_records"`
	LastSyncAt    *time.Time `json:"last_sync_at"`
}

// HealthCheck reports process health plus a snapshot of sync state.
// Always returns 200; the status field in the body conveys health.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	sources := h.coordinator.Sources()

	active := 0
	var lastSync *time.Time
	for i := range sources {
		if sources[i].Active {
			active++
		}
		if ts := sources[i].LastSyncAt; ts != nil {
			if lastSync == nil || ts.After(*lastSync) {
				lastSync = ts
			}
		}
	}

	httputil.OK(w, HealthStatus{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Uptime:        formatUptime(time.Since(h.startTime)),
		Sources:       len(sources),
		ActiveSources: active,
		StoredRecords: h.campaigns.Len(),
		LastSyncAt:    lastSync,
	})
}

// formatUptime produces a human-readable uptime string like "3d 4h 12m 5s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
