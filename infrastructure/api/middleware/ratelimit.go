package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/httprate"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
	"github.com/helixml/docnav/internal/config"
)

// RateLimit limits requests per client IP with a sliding window. A disabled
// config passes every request through.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled() {
		return func(next http.Handler) http.Handler { return next }
	}

	retryAfter := strconv.Itoa(int(cfg.Window().Seconds()))
	return httprate.Limit(
		cfg.Requests(),
		cfg.Window(),
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			e := jsonapi.NewError(
				strconv.Itoa(http.StatusTooManyRequests),
				"Too Many Requests",
				"too many check requests, try again later",
			)
			e.ID = GetCorrelationID(r.Context())

			w.Header().Set("Content-Type", jsonapi.MediaType)
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(jsonapi.NewErrorResponse(e))
		}),
	)
}
