package logger

import (
	"log/slog"
	"strings"
)

// sensitiveWords mark a key as secret when they appear as a whole
// segment of it: deploy_token and site.secret match, author does not.
var sensitiveWords = map[string]bool{
	"password":    true,
	"passwd":      true,
	"secret":      true,
	"token":       true,
	"credential":  true,
	"credentials": true,
	"auth":        true,
	"bearer":      true,
	"apikey":      true,
}

// sensitivePairs are two-segment names whose parts are harmless alone.
var sensitivePairs = []string{"api_key", "private_key", "access_key"}

// redactedValue replaces the value of a sensitive attribute.
const redactedValue = "***REDACTED***"

// redactSensitive is the handler's ReplaceAttr. Groups are walked
// recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// IsSensitiveKey reports whether an attribute or config key names a
// secret. Keys are split on '_', '.', and '-' and compared per segment.
func IsSensitiveKey(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(r rune) bool {
		return r == '_' || r == '.' || r == '-'
	})
	for i, seg := range segments {
		if sensitiveWords[seg] {
			return true
		}
		if i > 0 {
			pair := segments[i-1] + "_" + seg
			for _, p := range sensitivePairs {
				if pair == p {
					return true
				}
			}
		}
	}
	return false
}
