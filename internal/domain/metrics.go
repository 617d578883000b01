package domain

import "github.com/shopspring/decimal"

// AggregateMetrics rolls campaign records up into totals and derived ratios.
//
// CTR, ConversionRate and ROAS are pointers: when the denominator is zero
// the ratio is undefined and serializes as JSON null, never as 0, NaN or Inf.
// CTR and ConversionRate are percentages; ROAS is a plain multiple.
type AggregateMetrics struct {
	Spend          decimal.Decimal `json:"spend"`
	Impressions    int64           `json:"impressions"`
	Clicks         int64           `json:"clicks"`
	Conversions    int64           `json:"conversions"`
	Revenue        decimal.Decimal `json:"revenue"`
	CTR            *float64        `json:"ctr"`
	ConversionRate *float64        `json:"conversion_rate"`
	ROAS           *float64        `json:"roas"`
}
