// Package validate checks campaign records for structural problems and
// statistical anomalies before they are accepted into the store.
//
// Errors make a record invalid; warnings flag suspicious but plausible data
// and never block it.
package validate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
)

// maxStaleness is how far back a record can date before it's flagged as
// probably backfilled from the wrong range.
const maxStaleness = 90 * 24 * time.Hour

// dailySpendCeiling is the single-day spend above which a record is flagged
// for review. Legitimate accounts rarely clear it; corrupted feeds often do.
var dailySpendCeiling = decimal.NewFromInt(100000)

// Result is the outcome of validating one campaign record.
type Result struct {
	Valid       bool      `json:"valid"`
	Errors      []string  `json:"errors"`
	Warnings    []string  `json:"warnings"`
	CampaignID  string    `json:"campaign_id"`
	ValidatedAt time.Time `json:"validated_at"`
}

// Record validates rec against today's date.
func Record(rec domain.CampaignRecord) Result {
	return at(rec, time.Now().UTC())
}

// at is Record with an injected clock for deterministic tests.
func at(rec domain.CampaignRecord, now time.Time) Result {
	res := Result{
		CampaignID:  rec.ID,
		ValidatedAt: now,
		Errors:      []string{},
		Warnings:    []string{},
	}

	// Structural checks
	if rec.ID == "" {
		res.Errors = append(res.Errors, "missing campaign id")
	}
	if !rec.Platform.Valid() {
		res.Errors = append(res.Errors, fmt.Sprintf("unknown platform %q", rec.Platform))
	}
	if rec.Date.IsZero() {
		res.Errors = append(res.Errors, "missing date")
	}

	// Business rules
	if rec.Spend.IsNegative() {
		res.Errors = append(res.Errors, "spend cannot be negative")
	}
	if rec.Impressions < 0 {
		res.Errors = append(res.Errors, "impressions cannot be negative")
	}
	if rec.Clicks < 0 {
		res.Errors = append(res.Errors, "clicks cannot be negative")
	}
	if rec.Clicks > rec.Impressions {
		res.Errors = append(res.Errors, "clicks cannot exceed impressions")
	}
	if rec.Conversions != nil {
		if *rec.Conversions < 0 {
			res.Errors = append(res.Errors, "conversions cannot be negative")
		} else if *rec.Conversions > rec.Clicks {
			res.Errors = append(res.Errors, "conversions cannot exceed clicks")
		}
	}
	if rec.Revenue != nil && rec.Revenue.IsNegative() {
		res.Errors = append(res.Errors, "revenue cannot be negative")
	}

	if !rec.Date.IsZero() {
		today := domain.Day(now)
		switch {
		case rec.Date.After(today):
			res.Errors = append(res.Errors, "date cannot be in the future")
		case rec.Date.Before(today.Add(-maxStaleness)):
			res.Warnings = append(res.Warnings, "record is more than 90 days old")
		}
	}

	// Anomaly checks
	if rec.Impressions > 0 && rec.Clicks == 0 {
		res.Warnings = append(res.Warnings, "impressions recorded but no clicks")
	}
	if rec.Impressions == 0 && rec.Clicks > 0 {
		res.Errors = append(res.Errors, "clicks reported without impressions")
	}
	if rec.Spend.GreaterThan(dailySpendCeiling) {
		res.Warnings = append(res.Warnings, "spend is unusually high for a single day")
	}
	if rec.Impressions > 0 && float64(rec.Clicks)/float64(rec.Impressions) > 0.5 {
		res.Errors = append(res.Errors, "click-through rate above 50% is implausible")
	}
	if rec.Conversions != nil && *rec.Conversions > 0 &&
		(rec.Revenue == nil || rec.Revenue.IsZero()) {
		res.Warnings = append(res.Warnings, "conversions reported without revenue")
	}

	res.Valid = len(res.Errors) == 0
	return res
}
