package datasync

import "errors"

var (
	// ErrNoSources is returned by Sync when the coordinator holds zero
	// configured sources. Syncing nothing is a wiring mistake, not an
	// empty result.
	ErrNoSources = errors.New("no data sources configured")

	// ErrTotalSyncFailure is returned when at least one source was
	// attempted and every attempted source failed for the entire range.
	// The store keeps its previous snapshot in that case.
	ErrTotalSyncFailure = errors.New("all sources failed for the entire date range")
)
