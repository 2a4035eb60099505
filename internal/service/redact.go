package service

import (
	"regexp"
	"strings"
)

// apiKeyPattern matches api_key/apikey query parameter values in URLs embedded in error messages.
var apiKeyPattern = regexp.MustCompile(`(?i)(api_?key=)[^&\s"]+`)

const redacted = "[REDACTED]"

// Redact removes the API key from msg, both as a query value and as a literal.
func Redact(msg, apiKey string) string {
	msg = apiKeyPattern.ReplaceAllString(msg, "${1}"+redacted)
	if apiKey != "" {
		msg = strings.ReplaceAll(msg, apiKey, redacted)
	}
	return msg
}
