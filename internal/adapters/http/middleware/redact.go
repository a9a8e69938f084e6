package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/opscheck/internal/platform/logging"
)

const redactedValue = "[REDACTED]"

// RedactHeaders converts an http.Header map into a slice of slog.Attr values
// suitable for structured logging. Headers listed in
// logging.SensitiveHeaders are replaced with "[REDACTED]"; multi-value
// headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, redactedValue))
		} else {
			attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
		}
	}
	return attrs
}
