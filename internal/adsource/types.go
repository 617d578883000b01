package adsource

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
)

// campaignsResponse mirrors the platform reporting API body:
//
//	{"campaigns": [{"id": "...", "name": "...", "spend": 1000, ...}]}
type campaignsResponse struct {
	Campaigns []rawCampaign `json:"campaigns"`
}

// rawCampaign uses pointers for the required numeric fields so a missing
// field is distinguishable from a reported zero.
type rawCampaign struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Spend       *decimal.Decimal `json:"spend"`
	Impressions *int64           `json:"impressions"`
	Clicks      *int64           `json:"clicks"`
	Conversions *int64           `json:"conversions"`
	Revenue     *decimal.Decimal `json:"revenue"`
	Currency    string           `json:"currency"`
}

// normalize converts a wire campaign into a domain record. Missing required
// fields are an error; missing conversions/revenue stay nil (not reported),
// and a missing currency falls back to the default.
func (rc rawCampaign) normalize(platform domain.Platform, day time.Time) (domain.CampaignRecord, error) {
	switch {
	case rc.ID == "":
		return domain.CampaignRecord{}, fmt.Errorf("missing required field id")
	case rc.Name == "":
		return domain.CampaignRecord{}, fmt.Errorf("campaign %s: missing required field name", rc.ID)
	case rc.Spend == nil:
		return domain.CampaignRecord{}, fmt.Errorf("campaign %s: missing required field spend", rc.ID)
	case rc.Impressions == nil:
		return domain.CampaignRecord{}, fmt.Errorf("campaign %s: missing required field impressions", rc.ID)
	case rc.Clicks == nil:
		return domain.CampaignRecord{}, fmt.Errorf("campaign %s: missing required field clicks", rc.ID)
	}

	currency := rc.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return domain.CampaignRecord{
		ID:          rc.ID,
		Name:        rc.Name,
		Platform:    platform,
		Date:        day,
		Spend:       *rc.Spend,
		Impressions: *rc.Impressions,
		Clicks:      *rc.Clicks,
		Conversions: rc.Conversions,
		Revenue:     rc.Revenue,
		Currency:    currency,
	}, nil
}
