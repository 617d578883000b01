// Package store holds the latest synced snapshot of campaign records in
// memory.
//
// The engine is a read-mostly cache over the ad platforms' own systems of
// record: a sync run replaces the whole snapshot, readers serve API queries
// from it. Everything is guarded by a single RWMutex; writers (ReplaceAll,
// Update) never run concurrently with each other or with readers.
package store

import (
	"sync"
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

// CampaignStore is the in-memory record snapshot.
type CampaignStore struct {
	mu      sync.RWMutex
	records []domain.CampaignRecord
	byID    map[string]int
}

// New creates an empty store.
func New() *CampaignStore {
	return &CampaignStore{byID: make(map[string]int)}
}

// ReplaceAll atomically swaps the snapshot for records. Readers see either
// the old snapshot or the new one, never a mix.
func (s *CampaignStore) ReplaceAll(records []domain.CampaignRecord) {
	next := make([]domain.CampaignRecord, len(records))
	copy(next, records)

	// First occurrence wins when a sync produces duplicate campaign IDs
	// (e.g. the same campaign fetched for multiple days).
	index := make(map[string]int, len(next))
	for i, rec := range next {
		if _, exists := index[rec.ID]; !exists {
			index[rec.ID] = i
		}
	}

	s.mu.Lock()
	s.records = next
	s.byID = index
	s.mu.Unlock()
}

// Update applies changes to the record with the given id. Returns false if
// no such record exists.
func (s *CampaignStore) Update(id string, changes domain.FieldChanges) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return false
	}
	s.records[i] = changes.Apply(s.records[i])
	return true
}

// FindByID returns the record with the given id.
func (s *CampaignStore) FindByID(id string) (domain.CampaignRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.CampaignRecord{}, false
	}
	return s.records[i], true
}

// FilterBySource returns all records from the given platform.
func (s *CampaignStore) FilterBySource(platform domain.Platform) []domain.CampaignRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CampaignRecord
	for _, rec := range s.records {
		if rec.Platform == platform {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByDateRange returns all records dated within [start, end], both
// bounds inclusive.
func (s *CampaignStore) FilterByDateRange(start, end time.Time) []domain.CampaignRecord {
	start, end = domain.Day(start), domain.Day(end)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CampaignRecord
	for _, rec := range s.records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out
}

// All returns a copy of the current snapshot.
func (s *CampaignStore) All() []domain.CampaignRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CampaignRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the snapshot.
func (s *CampaignStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
