package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// production is set by Initialize; in production (JSON) mode email-like
// values are masked in addition to the always-on sensitive-key redaction.
var production bool

const redactedValue = "[REDACTED]"

var sensitiveKeyParts = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"authorization",
	"credential",
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Redact rewrites a slog key/value argument list, replacing values under
// sensitive keys and, in production, masking email-like strings anywhere.
// Odd trailing arguments pass through untouched.
func Redact(args []any) []any {
	if len(args) == 0 {
		return args
	}
	out := make([]any, len(args))
	copy(out, args)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			out[i+1] = redactedValue
			continue
		}
		if production {
			if s, ok := out[i+1].(string); ok {
				out[i+1] = maskEmails(s)
			}
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func maskEmails(s string) string {
	return emailPattern.ReplaceAllStringFunc(s, func(addr string) string {
		at := strings.Index(addr, "@")
		if at <= 1 {
			return "***" + addr[at:]
		}
		return fmt.Sprintf("%c***%s", addr[0], addr[at:])
	})
}
