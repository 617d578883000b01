package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when a platform response omits the currency.
const DefaultCurrency = "USD"

// CampaignRecord is one campaign's performance for one day on one platform.
//
// Spend and Revenue are decimals because they are money; float64 drift
// across large aggregations is not acceptable for spend reporting.
// Conversions and Revenue are pointers: platforms that don't track them
// return nothing, and "not reported" must stay distinct from zero.
type CampaignRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Platform    Platform         `json:"platform"`
	Date        time.Time        `json:"date"`
	Spend       decimal.Decimal  `json:"spend"`
	Impressions int64            `json:"impressions"`
	Clicks      int64            `json:"clicks"`
	Conversions *int64           `json:"conversions"`
	Revenue     *decimal.Decimal `json:"revenue"`
	Currency    string           `json:"currency"`
}

// FieldChanges carries a partial update to a campaign record. Nil fields are
// left untouched; there is no way to un-set a reported value.
type FieldChanges struct {
	Name        *string          `json:"name,omitempty"`
	Spend       *decimal.Decimal `json:"spend,omitempty"`
	Impressions *int64           `json:"impressions,omitempty"`
	Clicks      *int64           `json:"clicks,omitempty"`
	Conversions *int64           `json:"conversions,omitempty"`
	Revenue     *decimal.Decimal `json:"revenue,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
}

// Empty returns true if no field is set.
func (f FieldChanges) Empty() bool {
	return f.Name == nil && f.Spend == nil && f.Impressions == nil &&
		f.Clicks == nil && f.Conversions == nil && f.Revenue == nil &&
		f.Currency == nil
}

// Apply returns a copy of rec with the set fields overwritten.
func (f FieldChanges) Apply(rec CampaignRecord) CampaignRecord {
	if f.Name != nil {
		rec.Name = *f.Name
	}
	if f.Spend != nil {
		rec.Spend = *f.Spend
	}
	if f.Impressions != nil {
		rec.Impressions = *f.Impressions
	}
	if f.Clicks != nil {
		rec.Clicks = *f.Clicks
	}
	if f.Conversions != nil {
		v := *f.Conversions
		rec.Conversions = &v
	}
	if f.Revenue != nil {
		v := *f.Revenue
		rec.Revenue = &v
	}
	if f.Currency != nil {
		rec.Currency = *f.Currency
	}
	return rec
}

// Day truncates t to UTC midnight. All record dates and sync ranges are
// whole days; normalizing here keeps comparisons exact.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
