// Package middleware holds the HTTP middleware that is specific to this
// service and not provided by chi.
package middleware

import (
	"net/http"

	"github.com/hanibassam/hanibot/backend/pkg/utils"
)

// CORS returns a middleware enforcing the configured origin allow-list. An
// empty list keeps the permissive behavior ("*"). Requests bearing an Origin
// that is not on a non-empty list are rejected with 403 before any handler
// runs; preflight requests are answered directly.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case len(allowed) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin == "":
				// Same-origin or non-browser request; nothing to negotiate.
			default:
				if _, ok := allowed[origin]; !ok {
					utils.RespondError(w, http.StatusForbidden, "origin not allowed")
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
