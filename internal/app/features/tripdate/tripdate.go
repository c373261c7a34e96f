// internal/app/features/tripdate/tripdate.go
package tripdate

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/formutil"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the trip date announcement.
type Handler struct {
	svc       *Service
	maxUpload int64
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a trip date Handler.
func NewHandler(svc *Service, maxUpload int64, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload, errLog: errLog, logger: logger}
}

// Routes returns the trip date router.
//
//	GET  /  current trip date
//	POST /  multipart: date, places, description, images (files), keepImages
//
// places and keepImages may be repeated or comma-joined.
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.With(auth.RequireAdmin(tm, h.logger)).Post("/", h.update)
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get trip date")
	defer cancel()

	td, err := h.svc.Get(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, td)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	form, err := formutil.Parse(w, r, h.maxUpload)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	defer formutil.Close(r)

	in := UpdateInput{
		Date:        form.Optional("date"),
		Description: form.Optional("description"),
		NewImages:   form.Files("images"),
	}
	if form.Has("places") {
		in.Places = normalize.StringList(form.Values("places")...)
	}
	if form.Has("keepImages") {
		in.Keep = form.List("keepImages")
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "update trip date")
	defer cancel()

	td, err := h.svc.Update(ctx, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Trip date updated successfully", td)
}
