// internal/app/features/contacts/contacts.go
package contacts

import (
	"context"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	contactstore "github.com/dalemusser/stratatour/internal/app/store/contacts"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/inputval"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the site-wide contacts profile.
type Handler struct {
	store  *contactstore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a contacts Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{store: contactstore.New(db), errLog: errLog, logger: logger}
}

// Routes returns the contacts router. PUT replaces the whole profile.
func Routes(h *Handler, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.With(auth.RequireAdmin(tm, h.logger)).Put("/", h.update)
	return r
}

// Get returns the profile, empty if none has been saved.
func (h *Handler) Get(ctx context.Context) (*models.Contacts, error) {
	c, err := h.store.Get(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to load contacts", err)
	}
	return c, nil
}

// Update validates and stores c in place of the current profile.
func (h *Handler) Update(ctx context.Context, c models.Contacts) (*models.Contacts, error) {
	clean(&c)
	if err := inputval.Validate(c).Err(); err != nil {
		return nil, err
	}
	saved, err := h.store.Save(ctx, c)
	if err != nil {
		return nil, apperr.Upstream("Failed to save contacts", err)
	}
	h.logger.Info("contacts updated")
	return saved, nil
}

// clean trims every text field and normalizes the email.
func clean(c *models.Contacts) {
	for _, f := range []*string{
		&c.Phone, &c.WhatsApp, &c.Address,
		&c.Facebook, &c.Instagram, &c.Twitter, &c.YouTube, &c.TikTok,
		&c.Snapchat, &c.Telegram, &c.LinkedIn, &c.VK,
		&c.BusinessHours, &c.SEODescription, &c.SEOKeywords,
		&c.PrivacyPolicy, &c.TermsOfService,
	} {
		*f = strings.TrimSpace(*f)
	}
	c.Email = normalize.Email(c.Email)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "get contacts")
	defer cancel()

	c, err := h.Get(ctx)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.OK(w, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in models.Contacts
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "update contacts")
	defer cancel()

	c, err := h.Update(ctx, in)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Contacts updated successfully", c)
}
