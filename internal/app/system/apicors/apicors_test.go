package apicors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMiddleware_AnyOrigin(t *testing.T) {
	for _, origins := range [][]string{nil, {"*"}, {"", " "}} {
		h := Middleware(origins...)(okHandler)
		req := httptest.NewRequest(http.MethodGet, "/hero", nil)
		req.Header.Set("Origin", "https://anything.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("origins %q: Allow-Origin = %q, want *", origins, got)
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Errorf("origins %q: credentials must not be allowed", origins)
		}
	}
}

func TestMiddleware_ListedOrigins(t *testing.T) {
	h := Middleware("https://admin.stratatour.com/")(okHandler)

	tests := []struct {
		origin string
		want   string
	}{
		{"https://admin.stratatour.com", "https://admin.stratatour.com"},
		{"https://evil.example", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/hero", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("Origin %q: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
		if rec.Header().Get("Vary") != "Origin" {
			t.Errorf("Origin %q: missing Vary header", tt.origin)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Origin %q: status = %d", tt.origin, rec.Code)
		}
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	called := false
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/services", nil)
	req.Header.Set("Origin", "https://admin.stratatour.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight reached the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") != allowHeaders {
		t.Errorf("Allow-Headers = %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}
