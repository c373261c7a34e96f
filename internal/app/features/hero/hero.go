// internal/app/features/hero/hero.go
package hero

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/formutil"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the landing-page hero.
type Handler struct {
	svc       *Service
	maxUpload int64
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a hero Handler. maxUpload caps the request body in bytes.
func NewHandler(svc *Service, maxUpload int64, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload, errLog: errLog, logger: logger}
}

// Routes returns the hero router. Writes require an admin token.
//
//	GET    /  current hero
//	POST   /  multipart: video (file), title, subtitle, ctaText
//	DELETE /  remove the video, keep the text
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin(tm, h.logger))
		pr.Post("/", h.update)
		pr.Delete("/", h.deleteVideo)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get hero")
	defer cancel()

	hero, err := h.svc.Get(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, hero)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	form, err := formutil.Parse(w, r, h.maxUpload)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	defer formutil.Close(r)

	in := UpdateInput{
		Title:    form.Optional("title"),
		Subtitle: form.Optional("subtitle"),
		CTAText:  form.Optional("ctaText"),
	}
	if f, ok := form.File("video"); ok {
		in.Video = &f
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "update hero")
	defer cancel()

	hero, err := h.svc.Update(ctx, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Hero updated successfully", hero)
}

func (h *Handler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "delete hero video")
	defer cancel()

	hero, err := h.svc.DeleteVideo(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Hero video deleted successfully", hero)
}
