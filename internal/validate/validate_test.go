package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/domain"
)

var testNow = time.Date(2024, 10, 20, 15, 30, 0, 0, time.UTC)

func baseRecord() domain.CampaignRecord {
	conversions := int64(25)
	revenue := decimal.NewFromInt(2500)
	return domain.CampaignRecord{
		ID:          "campaign_1",
		Name:        "Search Brand",
		Platform:    domain.PlatformGoogleAds,
		Date:        time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC),
		Spend:       decimal.NewFromInt(1000),
		Impressions: 50000,
		Clicks:      1000,
		Conversions: &conversions,
		Revenue:     &revenue,
		Currency:    "USD",
	}
}

func TestValidRecordPasses(t *testing.T) {
	res := at(baseRecord(), testNow)
	if !res.Valid {
		t.Fatalf("expected valid, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
	if res.CampaignID != "campaign_1" {
		t.Errorf("campaign id = %q", res.CampaignID)
	}
	if !res.ValidatedAt.Equal(testNow) {
		t.Errorf("validated at = %v", res.ValidatedAt)
	}
}

func TestBusinessRuleErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CampaignRecord)
		want   string
	}{
		{
			name:   "negative spend",
			mutate: func(r *domain.CampaignRecord) { r.Spend = decimal.NewFromInt(-5) },
			want:   "spend cannot be negative",
		},
		{
			name:   "clicks exceed impressions",
			mutate: func(r *domain.CampaignRecord) { r.Clicks = 60000 },
			want:   "clicks cannot exceed impressions",
		},
		{
			name: "conversions exceed clicks",
			mutate: func(r *domain.CampaignRecord) {
				c := int64(1500)
				r.Conversions = &c
			},
			want: "conversions cannot exceed clicks",
		},
		{
			name: "negative revenue",
			mutate: func(r *domain.CampaignRecord) {
				rev := decimal.NewFromInt(-10)
				r.Revenue = &rev
			},
			want: "revenue cannot be negative",
		},
		{
			name:   "future date",
			mutate: func(r *domain.CampaignRecord) { r.Date = time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC) },
			want:   "date cannot be in the future",
		},
		{
			name:   "missing campaign id",
			mutate: func(r *domain.CampaignRecord) { r.ID = "" },
			want:   "missing campaign id",
		},
		{
			name: "clicks without impressions",
			mutate: func(r *domain.CampaignRecord) {
				r.Impressions = 0
				r.Clicks = 10
			},
			want: "clicks reported without impressions",
		},
		{
			name: "implausible click-through rate",
			mutate: func(r *domain.CampaignRecord) {
				r.Impressions = 1000
				r.Clicks = 600
			},
			want: "click-through rate above 50% is implausible",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			tt.mutate(&rec)
			res := at(rec, testNow)
			if res.Valid {
				t.Fatal("expected record to be invalid")
			}
			if !contains(res.Errors, tt.want) {
				t.Errorf("errors %v missing %q", res.Errors, tt.want)
			}
		})
	}
}

func TestWarningsKeepRecordValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CampaignRecord)
		want   string
	}{
		{
			name:   "stale record",
			mutate: func(r *domain.CampaignRecord) { r.Date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
			want:   "record is more than 90 days old",
		},
		{
			name: "impressions but no clicks",
			mutate: func(r *domain.CampaignRecord) {
				r.Clicks = 0
				r.Conversions = nil
			},
			want: "impressions recorded but no clicks",
		},
		{
			name:   "unusually high spend",
			mutate: func(r *domain.CampaignRecord) { r.Spend = decimal.NewFromInt(250000) },
			want:   "spend is unusually high for a single day",
		},
		{
			name:   "conversions without revenue",
			mutate: func(r *domain.CampaignRecord) { r.Revenue = nil },
			want:   "conversions reported without revenue",
		},
		{
			name: "conversions with zero revenue",
			mutate: func(r *domain.CampaignRecord) {
				rev := decimal.Zero
				r.Revenue = &rev
			},
			want: "conversions reported without revenue",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			tt.mutate(&rec)
			res := at(rec, testNow)
			if !res.Valid {
				t.Fatalf("expected record to stay valid, got errors %v", res.Errors)
			}
			if !contains(res.Warnings, tt.want) {
				t.Errorf("warnings %v missing %q", res.Warnings, tt.want)
			}
		})
	}
}

func TestSpendAtCeilingIsNotFlagged(t *testing.T) {
	rec := baseRecord()
	rec.Spend = decimal.NewFromInt(100000)
	res := at(rec, testNow)
	if contains(res.Warnings, "spend is unusually high for a single day") {
		t.Errorf("spend exactly at the ceiling should pass, warnings %v", res.Warnings)
	}
}

func TestMultipleProblemsAccumulate(t *testing.T) {
	rec := baseRecord()
	rec.Spend = decimal.NewFromInt(-1)
	rec.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	res := at(rec, testNow)
	if res.Valid {
		t.Fatal("expected invalid record")
	}
	if len(res.Errors) < 2 {
		t.Errorf("expected both errors reported, got %v", res.Errors)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
