package middleware

import (
	"net/http"
	"os"
	"strconv"
)

const (
	corsAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowedHeaders = "Content-Type, Authorization, X-Requested-With, Accept, Origin"
	corsDefaultMaxAge  = "86400"
)

// CORSMiddleware returns a middleware that answers preflight requests and
// stamps permissive CORS headers on every response. The admin console is
// the only browser client, so any origin is accepted.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Max-Age", corsMaxAge())

			// Preflight never reaches the API handlers
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMaxAge resolves the preflight cache lifetime, overridable through
// CORS_MAX_AGE. Non-numeric values fall back to the 24h default.
func corsMaxAge() string {
	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			return v
		}
	}
	return corsDefaultMaxAge
}
