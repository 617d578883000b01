package domain

import (
	"fmt"
	"time"
)

// Platform enumerates the ad platforms the engine can pull campaign
// performance data from.
type Platform string

const (
	PlatformGoogleAds   Platform = "google_ads"
	PlatformFacebookAds Platform = "facebook_ads"
	PlatformTikTokAds   Platform = "tiktok_ads"
)

// Platforms lists every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{PlatformGoogleAds, PlatformFacebookAds, PlatformTikTokAds}
}

// Valid returns true if p is a supported platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformGoogleAds, PlatformFacebookAds, PlatformTikTokAds:
		return true
	}
	return false
}

// ParsePlatform converts a string into a Platform, rejecting unknown values.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

// Source is a configured ad platform account the engine syncs from.
// The API key never serializes; it only travels in request headers.
type Source struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Platform   Platform   `json:"platform"`
	APIKey     string     `json:"-"`
	AccountID  string     `json:"account_id"`
	Active     bool       `json:"active"`
	LastSyncAt *time.Time `json:"last_sync_at"`
}
