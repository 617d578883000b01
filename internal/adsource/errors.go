package adsource

import (
	"fmt"
	"time"

	"github.com/ignite/admetrics/internal/domain"
)

// FetchError describes a failed attempt to retrieve one day of campaign data
// from one platform. Retryable drives the retry policy: rate limits, server
// errors and timeouts are worth retrying; auth failures and malformed
// responses are not.
type FetchError struct {
	Platform  domain.Platform
	Day       time.Time
	Retryable bool
	Err       error
}

func (e *FetchError) Error() string {
	kind := "permanent"
	if e.Retryable {
		kind = "transient"
	}
	return fmt.Sprintf("fetch %s %s: %s: %v", e.Platform, e.Day.Format("2006-01-02"), kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying.
func (e *FetchError) Transient() bool { return e.Retryable }
