package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ignite/admetrics/internal/analytics"
	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/pkg/httputil"
	"github.com/ignite/admetrics/internal/service/datasync"
	"github.com/ignite/admetrics/internal/store"
	"github.com/ignite/admetrics/internal/validate"
)

const dateLayout = "2006-01-02"

// Handlers contains all HTTP handlers
type Handlers struct {
	coordinator *datasync.Coordinator
	analytics   *analytics.Service
	campaigns   *store.CampaignStore
	startTime   time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(coordinator *datasync.Coordinator, analyticsSvc *analytics.Service, campaigns *store.CampaignStore) *Handlers {
	return &Handlers{
		coordinator: coordinator,
		analytics:   analyticsSvc,
		campaigns:   campaigns,
		startTime:   time.Now(),
	}
}

// syncRequest is the body of POST /api/sync/run
type syncRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// syncResponse summarizes a completed run. Records aren't inlined; they stay
// queryable through /api/campaigns.
type syncResponse struct {
	RunID          string    `json:"run_id"`
	Status         string    `json:"status"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	RecordsSynced  int       `json:"records_synced"`
	FailedSources  []string  `json:"failed_sources"`
	PartialSources []string  `json:"partial_sources"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

// RunSync handles POST /api/sync/run
func (h *Handlers) RunSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httputil.BadRequest(w, "invalid start_date, want YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httputil.BadRequest(w, "invalid end_date, want YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		httputil.BadRequest(w, "end_date is before start_date")
		return
	}

	result, err := h.coordinator.Sync(r.Context(), start, end)
	switch {
	case errors.Is(err, datasync.ErrNoSources):
		httputil.Error(w, http.StatusInternalServerError, "no data sources configured")
		return
	case errors.Is(err, datasync.ErrTotalSyncFailure):
		httputil.Error(w, http.StatusBadGateway, "all sources failed for the requested range")
		return
	case err != nil:
		httputil.Error(w, http.StatusServiceUnavailable, "sync aborted: "+err.Error())
		return
	}

	status := "ok"
	if result.Degraded() {
		status = "degraded"
	}
	httputil.OK(w, syncResponse{
		RunID:          result.RunID,
		Status:         status,
		StartDate:      result.StartDate.Format(dateLayout),
		EndDate:        result.EndDate.Format(dateLayout),
		RecordsSynced:  len(result.Records),
		FailedSources:  emptyIfNil(result.FailedSources),
		PartialSources: emptyIfNil(result.PartialSources),
		StartedAt:      result.StartedAt,
		CompletedAt:    result.CompletedAt,
	})
}

// campaignListResponse wraps record lists with a count
type campaignListResponse struct {
	Campaigns []domain.CampaignRecord `json:"campaigns"`
	Count     int                     `json:"count"`
}

// ListCampaigns handles GET /api/campaigns with an optional ?source= filter
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	var records []domain.CampaignRecord
	if q := r.URL.Query().Get("source"); q != "" {
		platform, err := domain.ParsePlatform(q)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		records = h.analytics.CampaignsBySource(platform)
	} else {
		records = h.campaigns.All()
	}
	if records == nil {
		records = []domain.CampaignRecord{}
	}
	httputil.OK(w, campaignListResponse{Campaigns: records, Count: len(records)})
}

// GetCampaign handles GET /api/campaigns/{id}
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.analytics.CampaignByID(chi.URLParam(r, "id"))
	if !ok {
		httputil.NotFound(w, "campaign not found")
		return
	}
	httputil.OK(w, rec)
}

// updateResponse carries the updated record plus any validation warnings
type updateResponse struct {
	Campaign domain.CampaignRecord `json:"campaign"`
	Warnings []string              `json:"warnings"`
}

// UpdateCampaign handles PATCH /api/campaigns/{id}. Unknown fields are
// rejected outright, and the update only lands if the record still validates
// with the changes applied.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var changes domain.FieldChanges
	if !httputil.DecodeStrict(w, r, &changes) {
		return
	}
	if changes.Empty() {
		httputil.BadRequest(w, "no updatable fields provided")
		return
	}

	current, ok := h.campaigns.FindByID(id)
	if !ok {
		httputil.NotFound(w, "campaign not found")
		return
	}

	result := validate.Record(changes.Apply(current))
	if !result.Valid {
		httputil.ErrorWithDetails(w, http.StatusUnprocessableEntity, "validation failed", result)
		return
	}

	if !h.campaigns.Update(id, changes) {
		httputil.NotFound(w, "campaign not found")
		return
	}
	updated, _ := h.campaigns.FindByID(id)
	httputil.OK(w, updateResponse{Campaign: updated, Warnings: result.Warnings})
}

// GetAggregateMetrics handles GET /api/metrics/aggregate?from=&to=
func (h *Handlers) GetAggregateMetrics(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		httputil.BadRequest(w, "invalid from date, want YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		httputil.BadRequest(w, "invalid to date, want YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		httputil.BadRequest(w, "to date is before from date")
		return
	}

	httputil.OK(w, h.analytics.AggregateRange(from, to))
}

// totalSpendResponse is the body of GET /api/spend/total
type totalSpendResponse struct {
	Source     string          `json:"source"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// GetTotalSpend handles GET /api/spend/total with an optional ?source= filter
func (h *Handlers) GetTotalSpend(w http.ResponseWriter, r *http.Request) {
	label := "all"
	var platform *domain.Platform
	if q := r.URL.Query().Get("source"); q != "" {
		p, err := domain.ParsePlatform(q)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		platform = &p
		label = q
	}

	httputil.OK(w, totalSpendResponse{Source: label, TotalSpend: h.analytics.TotalSpend(platform)})
}

// sourceListResponse is the body of GET /api/sources
type sourceListResponse struct {
	Sources []domain.Source `json:"sources"`
	Count   int             `json:"count"`
}

// ListSources handles GET /api/sources
func (h *Handlers) ListSources(w http.ResponseWriter, r *http.Request) {
	sources := h.coordinator.Sources()
	httputil.OK(w, sourceListResponse{Sources: sources, Count: len(sources)})
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
