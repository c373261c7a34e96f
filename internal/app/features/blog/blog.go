// internal/app/features/blog/blog.go
package blog

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the blog.
type Handler struct {
	svc    *Service
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a blog Handler.
func NewHandler(svc *Service, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, errLog: errLog, logger: logger}
}

// Routes returns the blog router. Single posts are addressed by ?id=.
//
//	GET    /        list (newest first), or one post with ?id=
//	POST   /        create
//	PUT    /?id=    update
//	DELETE /?id=    delete
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.get)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin(tm, h.logger))
		pr.Post("/", h.create)
		pr.Put("/", h.update)
		pr.Delete("/", h.delete)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get blog")
	defer cancel()

	if id := normalize.QueryParam(r.URL.Query().Get("id")); id != "" {
		p, err := h.svc.Get(ctx, id)
		if err != nil {
			h.errLog.Fail(w, r, err)
			return
		}
		jsonutil.OK(w, p)
		return
	}

	posts, err := h.svc.List(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, posts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "create blog post")
	defer cancel()

	p, err := h.svc.Create(ctx, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusCreated, "Blog post created successfully", p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "update blog post")
	defer cancel()

	p, err := h.svc.Update(ctx, r.URL.Query().Get("id"), in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Blog post updated successfully", p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "delete blog post")
	defer cancel()

	if err := h.svc.Delete(ctx, r.URL.Query().Get("id")); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Blog post deleted successfully", nil)
}
