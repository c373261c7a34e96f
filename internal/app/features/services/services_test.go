package services

import (
	"net/http"
	"net/url"
	"testing"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.uber.org/zap"
)

func TestRoutes(t *testing.T) {
	svc, _ := newService(t)
	logger := zap.NewNop()
	tm := testutil.TokenManager(t)
	token := testutil.AdminToken(t, tm)
	router := Routes(NewHandler(svc, errorsfeature.NewErrorLogger(logger), logger), tm)

	arabic := "/" + url.PathEscape(models.ServiceHotelsAR)
	body := map[string]any{"type": models.ServiceHotelsAR, "title": "فنادق موسكو", "description": "إقامة فاخرة"}

	t.Run("create requires admin", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusUnauthorized)
	})

	t.Run("create", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/", body), token))
		rec.AssertStatus(t, http.StatusCreated)
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/", body), token))
		rec.AssertStatus(t, http.StatusConflict)
	})

	t.Run("get arabic type", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, arabic))
		rec.AssertStatus(t, http.StatusOK)
		var s models.Service
		rec.Envelope(t, &s)
		if s.Type != models.ServiceHotelsAR || s.Icon != "🏨" {
			t.Errorf("service = %+v", s)
		}
	})

	t.Run("update", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, arabic, map[string]any{"locations": "Moscow, Sochi", "price": ""})
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.WithBearer(req, token))
		rec.AssertStatus(t, http.StatusOK)
		var s models.Service
		rec.Envelope(t, &s)
		if len(s.Locations) != 2 || s.Price != nil {
			t.Errorf("service = %+v", s)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
		rec.AssertStatus(t, http.StatusOK)
		var list []models.Service
		rec.Envelope(t, &list)
		if len(list) != 1 {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.WithBearer(testutil.NewRequest(http.MethodDelete, arabic), token))
		rec.AssertStatus(t, http.StatusOK)

		rec = testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.WithBearer(testutil.NewRequest(http.MethodDelete, arabic), token))
		rec.AssertStatus(t, http.StatusNotFound)
	})
}
