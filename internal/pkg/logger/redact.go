package logger

// MaskCredential masks an API key or token for safe logging.
// "sk_live_4f8a9b2c" → "sk_l***"
// Short values (≤8 chars) are fully masked: "abc123" → "***"
func MaskCredential(credential string) string {
	if credential == "" {
		return ""
	}
	if len(credential) > 8 {
		return credential[:4] + "***"
	}
	return "***"
}
