package middlewares

import (
	"net/http"
	"patient-chart-service/internal/pkg/exceptions"
	"patient-chart-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimiter limits each client IP to APP_MAX_REQUESTS per second.
func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
