package middleware

import (
	"cmp"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/taskboard/internal/platform/logging"
)

// redactedPlaceholder replaces sensitive header values in log output.
const redactedPlaceholder = "[REDACTED]"

// RedactHeaders converts an http.Header map into slog.Attr values suitable
// for debug logging. Headers named in logging.SensitiveHeaders are replaced
// with a placeholder; everything else passes through with multi-value headers
// joined by a comma. Attrs come back sorted by header name so repeated
// requests produce stable log lines.
//
// The sensitive set lives in the logging package next to the masq rules, so
// call-site redaction and the handler-level defense layer share one list.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, redactedPlaceholder))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
	}
	slices.SortFunc(attrs, func(a, b slog.Attr) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return attrs
}
