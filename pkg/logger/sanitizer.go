package logger

import (
	"regexp"
	"strings"
)

// Credential-shaped fragments that must never reach logs or the audit trail.
var (
	bearerPattern = regexp.MustCompile(`(?i)(bearer|token|jwt)[\s:=]+[^\s]+`)
	secretPattern = regexp.MustCompile(`(?i)(secret|private[_-]?key)[\s:=]+[^\s]+`)
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

const redactedPlaceholder = "[REDACTED]"

// Sanitize removes credential material and personal data from a log message.
func Sanitize(message string) string {
	message = bearerPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = emailPattern.ReplaceAllString(message, redactedPlaceholder)
	return message
}

// SanitizeHeader redacts the value of an Authorization-style header while
// keeping the scheme visible for debugging.
func SanitizeHeader(value string) string {
	if value == "" {
		return ""
	}
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return redactedPlaceholder
	}
	return parts[0] + " " + redactedPlaceholder
}
