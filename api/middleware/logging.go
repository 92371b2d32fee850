package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/foodgram-backend/pkg/logger"
)

// quietPrefixes are polled by orchestrators and scrapers; their completions
// are logged at debug level.
var quietPrefixes = []string{"/health/", "/metrics"}

// Logging writes one structured line per request with the matched chi route,
// status, size and latency.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rec := recorderFor(w)
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(ctx))

			fields := map[string]any{
				"status":      rec.Status(),
				"bytes":       rec.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if route := routePattern(r); route != "" {
				fields["route"] = route
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}
			ctx = logg.WithFields(ctx, fields)

			if isQuiet(r.URL.Path) {
				logg.Debug(ctx, "request.complete")
				return
			}
			logg.Info(ctx, "request.complete")
		})
	}
}

func isQuiet(path string) bool {
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
