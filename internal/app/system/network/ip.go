// Package network provides request-level network helpers.
package network

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP returns the caller's address for throttling and logging.
// X-Forwarded-For (first hop) wins over X-Real-IP, which wins over
// RemoteAddr. The port and IPv6 brackets are stripped.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.Trim(r.RemoteAddr, "[]")
}
