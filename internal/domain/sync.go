package domain

import "time"

// SyncResult summarizes one sync run across all active sources.
//
// FailedSources lists sources where every attempted day failed;
// PartialSources lists sources where some days failed and some succeeded.
// A source appears in at most one of the two.
type SyncResult struct {
	RunID          string           `json:"run_id"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	Records        []CampaignRecord `json:"records"`
	FailedSources  []string         `json:"failed_sources"`
	PartialSources []string         `json:"partial_sources"`
	StartedAt      time.Time        `json:"started_at"`
	CompletedAt    time.Time        `json:"completed_at"`
}

// Degraded returns true if any source failed fully or partially.
func (r *SyncResult) Degraded() bool {
	return len(r.FailedSources) > 0 || len(r.PartialSources) > 0
}
