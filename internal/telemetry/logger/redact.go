package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Attribute keys whose string values are never logged verbatim.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// MaxAttrLen caps the length of logged string attributes. Command arguments
// and stored values can be arbitrarily large.
const MaxAttrLen = 256

// redactSensitive replaces the value of attributes whose key looks sensitive.
// Groups are handled recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = truncateLong(redactSensitive(attr))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}
	return a
}

// truncateLong shortens string attributes longer than MaxAttrLen.
func truncateLong(a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	if s := a.Value.String(); len(s) > MaxAttrLen {
		return slog.String(a.Key, Truncate(s, MaxAttrLen))
	}
	return a
}

// Truncate cuts s to at most n bytes and appends how many bytes were dropped.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(+" + strconv.Itoa(len(s)-n) + " bytes)"
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
