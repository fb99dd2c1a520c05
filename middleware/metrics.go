package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/craftmarket/compliance-service/monitoring"
)

// statusRecorder captures the response status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records request latency and status per route pattern
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := monitoring.NormalizeRoute(r.URL.Path)
			monitoring.ObserveHTTPRequest(route, r.Method, strconv.Itoa(recorder.status), time.Since(start).Seconds())
		})
	}
}
