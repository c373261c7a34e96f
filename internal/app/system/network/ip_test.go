package network

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		want          string
	}{
		{"forwarded single", "192.168.1.1", "", "10.0.0.1:12345", "192.168.1.1"},
		{"forwarded chain", "203.0.113.195, 70.41.3.18, 150.172.238.178", "", "10.0.0.1:12345", "203.0.113.195"},
		{"forwarded spaces", "  192.168.1.1  ", "", "10.0.0.1:12345", "192.168.1.1"},
		{"forwarded empty first hop", " , 10.0.0.9", "10.0.0.2", "10.0.0.1:1", "10.0.0.2"},
		{"real ip", "", "192.168.1.1", "10.0.0.1:12345", "192.168.1.1"},
		{"forwarded beats real ip", "192.168.1.1", "10.0.0.2", "10.0.0.1:12345", "192.168.1.1"},
		{"remote with port", "", "", "192.168.1.1:12345", "192.168.1.1"},
		{"remote without port", "", "", "192.168.1.1", "192.168.1.1"},
		{"ipv6 with port", "", "", "[::1]:12345", "::1"},
		{"ipv6 bracketed", "", "", "[::1]", "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			req.RemoteAddr = tt.remoteAddr

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
