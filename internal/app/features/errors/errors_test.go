package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger_Fail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{"invalid input", apperr.InvalidInput("Title is required"), http.StatusBadRequest, "Title is required", false},
		{"not found", apperr.NotFound("Service not found"), http.StatusNotFound, "Service not found", false},
		{"conflict", apperr.Conflict("exists"), http.StatusConflict, "exists", false},
		{"upstream", apperr.Upstream("Failed to save hero", errors.New("socket closed")), http.StatusInternalServerError, "Failed to save hero", true},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal server error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			e := NewErrorLogger(zap.New(core))

			rec := testutil.NewRecorder()
			e.Fail(rec, testutil.NewRequest(http.MethodPost, "/hero"), tt.err)

			rec.AssertStatus(t, tt.wantStatus)
			env := rec.Envelope(t, nil)
			if env.Success || env.Error != tt.wantBody {
				t.Errorf("envelope = %+v, want error %q", env, tt.wantBody)
			}
			if got := logs.Len() > 0; got != tt.wantLogged {
				t.Errorf("logged = %v, want %v", got, tt.wantLogged)
			}
		})
	}
}

func TestErrorLogger_Fail_HidesCause(t *testing.T) {
	e := NewErrorLogger(zap.NewNop())
	rec := testutil.NewRecorder()
	e.Fail(rec, testutil.NewRequest(http.MethodGet, "/blog"), apperr.Upstream("Failed to load posts", errors.New("mongo: secret-host:27017 refused")))

	if body := rec.Body.String(); strings.Contains(body, "secret-host") {
		t.Errorf("response leaks cause: %s", body)
	}
}

func TestErrorLogger_Log_NamesAdmin(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := NewErrorLogger(zap.New(core))

	req := testutil.NewRequest(http.MethodPut, "/hero")
	claims := &auth.Claims{Email: "admin@x.com"}
	claims.Subject = "6615a0c2e4b0a1b2c3d4e5f6"
	req = req.WithContext(auth.WithAdmin(req.Context(), claims))

	e.Log(req, "save failed", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["admin_id"]; got != claims.Subject {
		t.Errorf("admin_id = %v, want %q", got, claims.Subject)
	}
}

func TestHandler_Fallbacks(t *testing.T) {
	h := NewHandler()

	rec := testutil.NewRecorder()
	h.NotFound(rec, testutil.NewRequest(http.MethodGet, "/nope"))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	h.MethodNotAllowed(rec, testutil.NewRequest(http.MethodPatch, "/hero"))
	rec.AssertStatus(t, http.StatusMethodNotAllowed)
	rec.AssertContains(t, `"success":false`)
}
