package hero

import (
	"net/http"
	"testing"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, string, *testutil.MemoryAssets) {
	t.Helper()
	svc, mem := newService(t)
	logger := zap.NewNop()
	h := NewHandler(svc, 10<<20, errorsfeature.NewErrorLogger(logger), logger)
	tm := testutil.TokenManager(t)
	return Routes(h, tm), testutil.AdminToken(t, tm), mem
}

func TestRoutes_WritesRequireToken(t *testing.T) {
	router, _, _ := newRouter(t)

	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		rec := testutil.NewRecorder()
		req := testutil.NewMultipartRequest(t, method, "/", map[string][]string{"title": {"x"}})
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusUnauthorized)
	}
}

func TestRoutes_GetEmpty(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var hero models.Hero
	env := rec.Envelope(t, &hero)
	if !env.Success || hero.VideoURL != "" {
		t.Errorf("GET / = %+v %+v", env, hero)
	}
}

func TestRoutes_UploadAndDelete(t *testing.T) {
	router, token, mem := newRouter(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/",
		map[string][]string{"title": {"Welcome"}, "ctaText": {"Explore"}},
		testutil.FormFile{Field: "video", Filename: "hero.mp4", ContentType: "video/mp4", Data: testutil.MP4()},
	)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithBearer(req, token))
	rec.AssertStatus(t, http.StatusOK)

	var hero models.Hero
	env := rec.Envelope(t, &hero)
	if env.Message != "Hero updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if hero.Title != "Welcome" || hero.AssetID == "" || !mem.Has(hero.AssetID) {
		t.Fatalf("hero = %+v", hero)
	}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithBearer(testutil.NewRequest(http.MethodDelete, "/"), token))
	rec.AssertStatus(t, http.StatusOK)

	var cleared models.Hero
	rec.Envelope(t, &cleared)
	if cleared.VideoURL != "" || cleared.Title != "Welcome" {
		t.Errorf("after delete = %+v", cleared)
	}
}

func TestRoutes_NoContent(t *testing.T) {
	router, token, _ := newRouter(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithBearer(req, token))

	rec.AssertStatus(t, http.StatusBadRequest)
	if env := rec.Envelope(t, nil); env.Error != "No content provided" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestRoutes_UploadFailure(t *testing.T) {
	router, token, mem := newRouter(t)
	mem.FailPuts(testutil.ErrInjected)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/", nil,
		testutil.FormFile{Field: "video", Filename: "hero.mp4", ContentType: "video/mp4", Data: testutil.MP4()},
	)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithBearer(req, token))

	rec.AssertStatus(t, http.StatusInternalServerError)
	if env := rec.Envelope(t, nil); env.Error != "Failed to upload file" {
		t.Errorf("error = %q", env.Error)
	}
}
