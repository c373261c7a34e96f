// Package apicors provides CORS middleware for the bearer-token API.
//
// Admin requests authenticate with an Authorization header, never cookies,
// so credentials are not allowed and a wildcard origin is safe for the
// public read endpoints. Deployments that want to pin the admin front-end
// pass its origins explicitly.
package apicors

import (
	"net/http"
	"strings"
)

const (
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowHeaders = "Authorization, Content-Type, Accept"
	maxAge       = "86400" // 24 hours
)

// Middleware returns CORS middleware for the given origins. With no origins,
// or with "*" among them, any origin is allowed.
//
// Usage in routes.go:
//
//	r.Use(apicors.Middleware(appCfg.CORSOrigins...))
func Middleware(origins ...string) func(http.Handler) http.Handler {
	allowAll := false
	originSet := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if o == "*" {
			allowAll = true
		}
		originSet[o] = struct{}{}
	}
	if len(originSet) == 0 {
		allowAll = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Add("Vary", "Origin")
				if origin := r.Header.Get("Origin"); origin != "" {
					if _, ok := originSet[origin]; ok {
						h.Set("Access-Control-Allow-Origin", origin)
					}
					// Unlisted origins get no CORS headers; the browser blocks them.
				}
			}
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Max-Age", maxAge)

			// Preflight
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
