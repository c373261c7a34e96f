// internal/app/features/uploads/uploads.go
package uploads

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/formutil"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler stores standalone images for the admin editors. The returned
// {url, assetId} pair is what category items, services and blog posts keep
// in their images lists.
type Handler struct {
	assets    *assets.Manager
	maxUpload int64
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates an uploads Handler.
func NewHandler(am *assets.Manager, maxUpload int64, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{assets: am, maxUpload: maxUpload, errLog: errLog, logger: logger}
}

// Routes returns the uploads router. Every route requires an admin.
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(auth.RequireAdmin(tm, h.logger))
	r.Post("/", h.upload)
	return r
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	form, err := formutil.Parse(w, r, h.maxUpload)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	defer formutil.Close(r)

	f, ok := form.File("file")
	if !ok {
		h.errLog.Fail(w, r, apperr.InvalidInput("No file provided"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "upload image")
	defer cancel()

	a, err := h.assets.Issue(ctx, assets.GenericImage, f)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusCreated, "File uploaded successfully", a)
}
