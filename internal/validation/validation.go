package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field length limits.
const (
	MaxQuestionLength = 500
	MaxAnswerLength   = 1000
)

// ValidateText checks that a free-text field is printable text no longer
// than maxLen runes. Line breaks and tabs are allowed.
func ValidateText(field, value string, maxLen int) (bool, string) {
	if value == "" {
		return false, field + " is required"
	}

	if utf8.RuneCountInString(value) > maxLen {
		return false, field + " is too long"
	}

	for _, r := range value {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return false, field + " contains invalid characters"
		}
	}

	return true, ""
}

// ValidateChoice checks that value is one of allowed, ignoring case and
// surrounding whitespace. Returns the allowed spelling on success.
func ValidateChoice(field, value string, allowed []string) (string, bool, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false, field + " is required"
	}

	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, true, ""
		}
	}

	return "", false, "Invalid " + field + ": " + value
}
