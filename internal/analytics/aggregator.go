// Package analytics rolls synced campaign records up into spend totals and
// performance ratios.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
)

// Aggregate sums records into totals and derives CTR, conversion rate and
// ROAS. Ratios with a zero denominator stay nil rather than becoming 0: "no
// impressions yet" and "0% click-through" are different answers.
//
// Records with nil conversions or revenue count as zero toward the totals;
// the per-record distinction only matters before aggregation.
func Aggregate(records []domain.CampaignRecord) domain.AggregateMetrics {
	m := domain.AggregateMetrics{
		Spend:   decimal.Zero,
		Revenue: decimal.Zero,
	}

	for _, rec := range records {
		m.Spend = m.Spend.Add(rec.Spend)
		m.Impressions += rec.Impressions
		m.Clicks += rec.Clicks
		if rec.Conversions != nil {
			m.Conversions += *rec.Conversions
		}
		if rec.Revenue != nil {
			m.Revenue = m.Revenue.Add(*rec.Revenue)
		}
	}

	if m.Impressions > 0 {
		ctr := float64(m.Clicks) / float64(m.Impressions) * 100
		m.CTR = &ctr
	}
	if m.Clicks > 0 {
		rate := float64(m.Conversions) / float64(m.Clicks) * 100
		m.ConversionRate = &rate
	}
	if m.Spend.IsPositive() {
		roas := m.Revenue.Div(m.Spend).InexactFloat64()
		m.ROAS = &roas
	}

	return m
}
