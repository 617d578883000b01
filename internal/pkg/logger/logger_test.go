package logger

import "testing"

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc123", "***"},
		{"12345678", "***"},
		{"sk_live_4f8a9b2c", "sk_l***"},
	}
	for _, tt := range tests {
		if got := MaskCredential(tt.in); got != tt.want {
			t.Errorf("MaskCredential(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactCredentialValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"api key field", "api_key", "sk_live_4f8a9b2c", "sk_l***"},
		{"key name with prefix", "google_api_key", "short", "***"},
		{"authorization field", "authorization", "Bearer sk_live_4f8a9b2c", "Bear***"},
		{"bearer token in generic field", "request", "GET / with Bearer sk_live_4f8a9b2c attached", "GET / with Bearer *** attached"},
		{"plain field untouched", "platform", "google_ads", "google_ads"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactCredentialValue(tt.key, tt.val); got != tt.want {
				t.Errorf("redactCredentialValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"", INFO},
		{"nonsense", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
