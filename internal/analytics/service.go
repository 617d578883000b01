package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/store"
)

// Service answers analytics queries against the current store snapshot.
type Service struct {
	store *store.CampaignStore
}

// NewService creates an analytics service over the given store.
func NewService(st *store.CampaignStore) *Service {
	return &Service{store: st}
}

// AggregateRange aggregates all records dated within [start, end] inclusive.
func (s *Service) AggregateRange(start, end time.Time) domain.AggregateMetrics {
	return Aggregate(s.store.FilterByDateRange(start, end))
}

// TotalSpend sums spend across the snapshot. A nil platform means all
// platforms.
func (s *Service) TotalSpend(platform *domain.Platform) decimal.Decimal {
	var records []domain.CampaignRecord
	if platform != nil {
		records = s.store.FilterBySource(*platform)
	} else {
		records = s.store.All()
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Spend)
	}
	return total
}

// CampaignByID looks up a single campaign record.
func (s *Service) CampaignByID(id string) (domain.CampaignRecord, bool) {
	return s.store.FindByID(id)
}

// CampaignsBySource lists all records from one platform.
func (s *Service) CampaignsBySource(platform domain.Platform) []domain.CampaignRecord {
	return s.store.FilterBySource(platform)
}
