package handlers

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Message length limit, in runes.
const MaxMessageLength = 8000

var (
	scriptTagRegex = regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	onEventRegex   = regexp.MustCompile(`(?i)\s+on\w+\s*=`)
)

// SanitizeMessageBody validates and cleans a message body before it is
// handed to the store. Returns the cleaned body or a validation error.
func SanitizeMessageBody(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", errors.New("message cannot be empty")
	}

	if utf8.RuneCountInString(body) > MaxMessageLength {
		return "", errors.New("message exceeds maximum length")
	}

	// Strip script tags and inline event handlers; bodies are rendered
	// by browser clients.
	body = scriptTagRegex.ReplaceAllString(body, "")
	body = onEventRegex.ReplaceAllString(body, " ")

	return strings.TrimSpace(body), nil
}
