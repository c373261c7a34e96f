// internal/app/features/services/services.go
package services

import (
	"net/http"
	"net/url"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the service records.
type Handler struct {
	svc    *Service
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a services Handler.
func NewHandler(svc *Service, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, errLog: errLog, logger: logger}
}

// Routes returns the services router. Types may be Arabic, so the path
// segment is unescaped before lookup.
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{type}", h.get)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin(tm, h.logger))
		pr.Post("/", h.create)
		pr.Put("/{type}", h.update)
		pr.Delete("/{type}", h.delete)
	})
	return r
}

func pathType(r *http.Request) (string, error) {
	typ, err := url.PathUnescape(chi.URLParam(r, "type"))
	if err != nil || typ == "" {
		return "", apperr.InvalidInput("Invalid service type")
	}
	return typ, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "list services")
	defer cancel()

	list, err := h.svc.List(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	typ, err := pathType(r)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get service")
	defer cancel()

	svc, err := h.svc.Get(ctx, typ)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, svc)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "create service")
	defer cancel()

	svc, err := h.svc.Create(ctx, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	typ, err := pathType(r)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "update service")
	defer cancel()

	svc, err := h.svc.Update(ctx, typ, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	typ, err := pathType(r)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "delete service")
	defer cancel()

	if err := h.svc.Delete(ctx, typ); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Service deleted successfully", nil)
}
