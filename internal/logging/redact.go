// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"regexp"
	"strings"
)

// secretParams matches credentials carried in query strings, e.g. the TMDB
// api_key that net/http echoes back inside *url.Error messages.
var secretParams = regexp.MustCompile(`(?i)\b(api_key|apikey|access_token|token)=([^&\s"]+)`)

// maxErrorLen bounds sanitized error strings.
const maxErrorLen = 300

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "0123456789abcdef0123" -> "0123...0123"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeError masks query-string credentials in an error message and
// truncates it.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return truncateString(RedactSecrets(err.Error()), maxErrorLen)
}

// RedactSecrets replaces the value of every credential query parameter in s.
func RedactSecrets(s string) string {
	return secretParams.ReplaceAllStringFunc(s, func(m string) string {
		eq := strings.IndexByte(m, '=')
		return m[:eq+1] + "***"
	})
}

// SanitizeValue masks value when key names a credential.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "api_key", "apikey", "token", "access_token", "secret", "secret_key", "password", "authorization":
		return SanitizeToken(value)
	}
	return value
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
