package middleware

import (
	"net/http"
	"strings"
)

// Default CORS policy for the public lead endpoints.
const (
	DefaultAllowedMethods = "GET, HEAD, PUT, PATCH, POST, DELETE"
	DefaultAllowedHeaders = "Content-Type, Accept"
)

// CORS provides an allowlist-based CORS middleware.
// If allowedOrigins contains "*", every origin is allowed with a literal "*".
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAny = true
			continue
		}
		allow[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			allowed := false
			switch {
			case allowAny:
				w.Header().Set("Access-Control-Allow-Origin", "*")
				allowed = true
			case origin != "" && isAllowedOrigin(allow, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				allowed = true
			}

			// Handle preflight requests.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", DefaultAllowedMethods)
					w.Header().Set("Access-Control-Allow-Headers", DefaultAllowedHeaders)
				}
				w.Header().Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAllowedOrigin(allow map[string]struct{}, origin string) bool {
	_, ok := allow[origin]
	return ok
}
