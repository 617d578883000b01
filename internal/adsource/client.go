// Package adsource fetches daily campaign performance from the ad platform
// reporting APIs and normalizes the responses into domain records.
//
// Every platform exposes the same shape of reporting endpoint
// (GET {base}/v1/campaigns?account_id=...&date=YYYY-MM-DD with a bearer
// token), so one client serves all of them; only the base URL differs.
package adsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ignite/admetrics/internal/domain"
	"github.com/ignite/admetrics/internal/pkg/logger"
	"github.com/ignite/admetrics/internal/pkg/retry"
)

// HTTPDoer is the interface for making HTTP requests, allowing tests to
// substitute a fake transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder counts fetch attempts and failures. Implementations must be safe
// for concurrent use.
type Recorder interface {
	FetchAttempt(platform string)
	FetchFailure(platform string, transient bool)
}

// Config holds client settings.
type Config struct {
	// Timeout bounds each individual attempt, not the whole retry budget.
	Timeout time.Duration
	// BaseURLs overrides the per-platform API endpoints (stubs, test
	// servers). Platforms without an entry use the production URL.
	BaseURLs map[domain.Platform]string
}

// Client calls the platform reporting APIs.
type Client struct {
	httpClient HTTPDoer
	policy     *retry.Policy
	timeout    time.Duration
	baseURLs   map[domain.Platform]string
	metrics    Recorder
}

// NewClient creates a platform API client that retries transient failures
// according to policy.
func NewClient(cfg Config, policy *retry.Policy) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if policy == nil {
		policy = retry.New(3, time.Second)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		policy:     policy,
		timeout:    timeout,
		baseURLs:   cfg.BaseURLs,
	}
}

// SetHTTPClient replaces the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// SetRecorder wires in fetch telemetry.
func (c *Client) SetRecorder(r Recorder) {
	c.metrics = r
}

// BaseURL returns the reporting API root for a platform.
func (c *Client) BaseURL(platform domain.Platform) string {
	if u, ok := c.baseURLs[platform]; ok && u != "" {
		return strings.TrimRight(u, "/")
	}
	return fmt.Sprintf("https://api.%s.com", platform)
}

// FetchDay retrieves all campaign records for one source on one day,
// retrying transient failures. The returned error is a *FetchError.
func (c *Client) FetchDay(ctx context.Context, src *domain.Source, day time.Time) ([]domain.CampaignRecord, error) {
	day = domain.Day(day)

	var records []domain.CampaignRecord
	err := c.policy.Do(ctx, string(src.Platform), func(ctx context.Context) error {
		recs, err := c.fetchOnce(ctx, src, day)
		if err != nil {
			return err
		}
		records = recs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context, src *domain.Source, day time.Time) ([]domain.CampaignRecord, error) {
	if c.metrics != nil {
		c.metrics.FetchAttempt(string(src.Platform))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("account_id", src.AccountID)
	params.Set("date", day.Format("2006-01-02"))
	endpoint := fmt.Sprintf("%s/v1/campaigns?%s", c.BaseURL(src.Platform), params.Encode())

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(src, day, false, err)
	}
	req.Header.Set("Authorization", "Bearer "+src.APIKey)
	req.Header.Set("Accept", "application/json")

	logger.Debug("fetching campaigns",
		"platform", string(src.Platform),
		"account_id", src.AccountID,
		"date", day.Format("2006-01-02"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failures (refused connections, timeouts) are
		// always worth retrying.
		return nil, c.fail(src, day, true, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(src, day, true, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
		return nil, c.fail(src, day, retryableStatus(resp.StatusCode), cause)
	}

	var payload campaignsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, c.fail(src, day, false, fmt.Errorf("parse response: %w", err))
	}

	records := make([]domain.CampaignRecord, 0, len(payload.Campaigns))
	for i, raw := range payload.Campaigns {
		rec, err := raw.normalize(src.Platform, day)
		if err != nil {
			return nil, c.fail(src, day, false, fmt.Errorf("campaign %d: %w", i, err))
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) fail(src *domain.Source, day time.Time, retryable bool, err error) error {
	if c.metrics != nil {
		c.metrics.FetchFailure(string(src.Platform), retryable)
	}
	return &FetchError{Platform: src.Platform, Day: day, Retryable: retryable, Err: err}
}

// retryableStatus reports whether an HTTP status code indicates a transient
// failure: rate limits and server-side errors recover, everything else in
// 4xx is the caller's fault and will fail the same way every time.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
