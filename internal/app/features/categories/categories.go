// internal/app/features/categories/categories.go
package categories

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the "Get to Know Russia" category buckets.
type Handler struct {
	svc    *Service
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a categories Handler.
func NewHandler(svc *Service, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, errLog: errLog, logger: logger}
}

// Routes returns the categories router.
//
//	GET  /                         every bucket
//	GET  /?category=<type>         one bucket
//	GET  /?category=<type>&id=<k>  one item (id, slug, or legacy index)
//	GET  /?category=<type>&slug=<k>
//	POST /                         {type, items}; replaces the bucket's items
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.With(auth.RequireAdmin(tm, h.logger)).Post("/", h.save)
	return r
}

type saveRequest struct {
	Type  string                `json:"type"`
	Items []models.CategoryItem `json:"items"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get categories")
	defer cancel()

	q := r.URL.Query()
	typ := normalize.QueryParam(q.Get("category"))
	if typ == "" {
		buckets, err := h.svc.List(ctx)
		if err != nil {
			h.errLog.Fail(w, r, err)
			return
		}
		jsonutil.OK(w, buckets)
		return
	}

	key := normalize.QueryParam(q.Get("id"))
	if key == "" {
		key = normalize.QueryParam(q.Get("slug"))
	}
	if key == "" {
		b, err := h.svc.Get(ctx, typ)
		if err != nil {
			h.errLog.Fail(w, r, err)
			return
		}
		jsonutil.OK(w, b)
		return
	}

	item, err := h.svc.GetItem(ctx, typ, key)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	// A miss is reported as null data, not 404.
	jsonutil.OK(w, item)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := jsonutil.Decode(w, r, &req); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "save category")
	defer cancel()

	b, err := h.svc.Save(ctx, normalize.QueryParam(req.Type), req.Items)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Category saved successfully", b)
}
