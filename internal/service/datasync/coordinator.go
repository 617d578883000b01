package datasync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/pkg/logger"
)

// Fetcher retrieves one day of campaign records for one source.
type Fetcher interface {
	FetchDay(ctx context.Context, src *domain.Source, day time.Time) ([]domain.CampaignRecord, error)
}

// RecordStore receives the snapshot produced by a sync run.
type RecordStore interface {
	ReplaceAll(records []domain.CampaignRecord)
}

// Telemetry observes completed sync runs. Implementations must be safe for
// concurrent use.
type Telemetry interface {
	SyncRun(outcome string, records int, elapsed time.Duration)
}

// Config holds coordinator settings.
type Config struct {
	// Concurrency caps how many sources sync in parallel; values below 2
	// process sources sequentially. Days within a source are always
	// sequential.
	Concurrency int
}

// Coordinator runs sync cycles across all configured sources.
type Coordinator struct {
	fetcher     Fetcher
	store       RecordStore
	concurrency int
	telemetry   Telemetry

	mu      sync.Mutex // guards LastSyncAt on the sources
	sources []*domain.Source
}

// NewCoordinator creates a coordinator over the given sources.
func NewCoordinator(sources []*domain.Source, fetcher Fetcher, store RecordStore, cfg Config) *Coordinator {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Coordinator{
		fetcher:     fetcher,
		store:       store,
		concurrency: concurrency,
		sources:     sources,
	}
}

// SetTelemetry wires in sync run metrics.
func (c *Coordinator) SetTelemetry(t Telemetry) {
	c.telemetry = t
}

// Sources returns a point-in-time copy of the configured sources, safe to
// read while a sync is running.
func (c *Coordinator) Sources() []domain.Source {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Source, len(c.sources))
	for i, src := range c.sources {
		out[i] = *src
	}
	return out
}

// sourceResult tallies one source's share of a sync run.
type sourceResult struct {
	records   []domain.CampaignRecord
	attempted int
	failed    int
}

// Sync fetches records for every active source across [start, end] (whole
// days, both bounds inclusive) and, unless everything failed or ctx ended,
// replaces the store snapshot with the result.
//
// Sources degrade independently: a source with some failed days lands in
// PartialSources, a source with no successful day lands in FailedSources,
// and neither blocks the records the other sources produced. When ctx is
// cancelled mid-run or every attempted source failed outright, the partial
// result is still returned alongside the error and the store keeps its
// previous snapshot.
func (c *Coordinator) Sync(ctx context.Context, start, end time.Time) (*domain.SyncResult, error) {
	if len(c.sources) == 0 {
		return nil, ErrNoSources
	}

	start, end = domain.Day(start), domain.Day(end)
	result := &domain.SyncResult{
		RunID:     uuid.New().String(),
		StartDate: start,
		EndDate:   end,
		StartedAt: time.Now().UTC(),
	}

	var active []*domain.Source
	for _, src := range c.sources {
		if src.Active {
			active = append(active, src)
		} else {
			logger.Debug("skipping inactive source", "source_id", src.ID)
		}
	}

	logger.Info("sync started",
		"run_id", result.RunID,
		"start_date", start.Format("2006-01-02"),
		"end_date", end.Format("2006-01-02"),
		"sources", len(active))

	// Fan out across sources; results land in per-source slots so the
	// merge below stays in configured order no matter who finishes first.
	// Slots are acquired here, not in the goroutine, so concurrency 1
	// degrades to a strict sequential walk in configured order.
	results := make([]sourceResult, len(active))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	for i, src := range active {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, src *domain.Source) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = c.syncSource(ctx, src, start, end)
		}(i, src)
	}
	wg.Wait()

	attempted := 0
	fullyFailed := 0
	for i, src := range active {
		res := results[i]
		if res.attempted == 0 {
			// Cancelled before this source got a single fetch off.
			continue
		}
		attempted++
		result.Records = append(result.Records, res.records...)
		switch {
		case res.failed == res.attempted:
			result.FailedSources = append(result.FailedSources, src.ID)
			fullyFailed++
		case res.failed > 0:
			result.PartialSources = append(result.PartialSources, src.ID)
		}
		if res.failed < res.attempted {
			c.markSynced(src)
		}
	}
	result.CompletedAt = time.Now().UTC()
	elapsed := result.CompletedAt.Sub(result.StartedAt)

	if err := ctx.Err(); err != nil {
		logger.Warn("sync cancelled",
			"run_id", result.RunID,
			"records", len(result.Records))
		c.observe("cancelled", 0, elapsed)
		return result, err
	}

	if attempted > 0 && fullyFailed == attempted {
		logger.Error("sync failed for every source",
			"run_id", result.RunID,
			"sources_attempted", attempted)
		c.observe("total_failure", 0, elapsed)
		return result, ErrTotalSyncFailure
	}

	c.store.ReplaceAll(result.Records)

	outcome := "success"
	if result.Degraded() {
		outcome = "partial"
	}
	c.observe(outcome, len(result.Records), elapsed)
	logger.Info("sync completed",
		"run_id", result.RunID,
		"records", len(result.Records),
		"failed_sources", len(result.FailedSources),
		"partial_sources", len(result.PartialSources),
		"elapsed", elapsed.String())
	return result, nil
}

// syncSource walks the date range for one source, oldest day first. Days
// fail independently; remaining days are skipped once ctx ends.
func (c *Coordinator) syncSource(ctx context.Context, src *domain.Source, start, end time.Time) sourceResult {
	var res sourceResult
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			logger.Warn("sync cancelled, skipping remaining days",
				"source_id", src.ID,
				"next_day", day.Format("2006-01-02"))
			break
		}
		res.attempted++

		// The fetch context drops the parent's cancellation but keeps its
		// values: an in-flight day runs to completion (bounded by the
		// client's own timeout) instead of being torn down mid-request.
		records, err := c.fetcher.FetchDay(context.WithoutCancel(ctx), src, day)
		if err != nil {
			res.failed++
			logger.Warn("day fetch failed",
				"source_id", src.ID,
				"platform", string(src.Platform),
				"date", day.Format("2006-01-02"),
				"error", err.Error())
			continue
		}
		res.records = append(res.records, records...)
	}
	return res
}

func (c *Coordinator) markSynced(src *domain.Source) {
	now := time.Now().UTC()
	c.mu.Lock()
	src.LastSyncAt = &now
	c.mu.Unlock()
}

func (c *Coordinator) observe(outcome string, records int, elapsed time.Duration) {
	if c.telemetry != nil {
		c.telemetry.SyncRun(outcome, records, elapsed)
	}
}

// Start runs a sync immediately and then on every tick until ctx ends. Each
// run covers the trailing lookbackDays window up to today.
func (c *Coordinator) Start(ctx context.Context, interval time.Duration, lookbackDays int) {
	logger.Info("starting scheduled sync",
		"interval", interval.String(),
		"lookback_days", lookbackDays)

	c.runScheduled(ctx, lookbackDays)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduled sync stopped")
			return
		case <-ticker.C:
			c.runScheduled(ctx, lookbackDays)
		}
	}
}

func (c *Coordinator) runScheduled(ctx context.Context, lookbackDays int) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)
	if _, err := c.Sync(ctx, start, end); err != nil {
		logger.Error("scheduled sync failed", "error", err.Error())
	}
}
