package logging

import "regexp"

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Matches password=xxx, pwd=xxx, pass=xxx in key/value DSNs.
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches user:pass@host credentials in URL-style DSNs.
	credentialsPattern = regexp.MustCompile(`://[^:/]+:[^@]+@`)
)

// SanitizeDSN removes credentials from a connection string before it is
// logged.
func SanitizeDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(dsn, "${1}="+RedactedText)
	return credentialsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
}
