// internal/app/features/login/login.go
package login

import (
	"context"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	adminstore "github.com/dalemusser/stratatour/internal/app/store/admins"
	ratelimitstore "github.com/dalemusser/stratatour/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/authutil"
	"github.com/dalemusser/stratatour/internal/app/system/inputval"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// invalidCredentials is the only message a failed credential check returns,
// whichever half of the pair was wrong.
const invalidCredentials = "Invalid email or password"

// Handler provides the admin login endpoint.
type Handler struct {
	admins *adminstore.Store
	limits *ratelimitstore.Store // nil if lockout disabled
	tokens *auth.TokenManager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a login Handler. limits can be nil to disable the
// per-email lockout.
func NewHandler(
	db *mongo.Database,
	tokens *auth.TokenManager,
	limits *ratelimitstore.Store,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		admins: adminstore.New(db),
		limits: limits,
		tokens: tokens,
		errLog: errLog,
		logger: logger,
	}
}

// Routes mounts POST / behind the per-IP limiter (nil disables it).
func Routes(h *Handler, ipLimiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()
	if ipLimiter != nil {
		r.Use(ipLimiter.Middleware(h.logger))
	}
	r.Post("/", h.handleLogin)
	return r
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,max=72" label:"Password"`
}

// AdminVM is the public view of the signed-in admin.
type AdminVM struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Result is a successful login.
type Result struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ExpiresIn int64     `json:"expiresIn"` // seconds
	Admin     AdminVM   `json:"admin"`
}

// Login checks the credential pair and issues a session token.
func (h *Handler) Login(ctx context.Context, email, password string) (Result, error) {
	in := loginInput{Email: normalize.Email(email), Password: password}
	if err := inputval.Validate(in).Err(); err != nil {
		return Result{}, err
	}

	if h.limits != nil {
		if allowed, _, _ := h.limits.CheckAllowed(ctx, in.Email); !allowed {
			return Result{}, apperr.RateLimited("Too many failed login attempts. Please try again later.")
		}
	}

	admin, err := h.admins.GetByEmail(ctx, in.Email)
	switch {
	case err == mongo.ErrNoDocuments:
		// Keep the unknown-email path as slow as a real comparison.
		authutil.CheckDummy(in.Password)
		h.recordFailure(ctx, in.Email)
		return Result{}, apperr.Unauthenticated(invalidCredentials)
	case err != nil:
		return Result{}, apperr.Upstream("Login failed", err)
	}

	if !authutil.CheckPassword(in.Password, admin.PasswordHash) {
		h.recordFailure(ctx, in.Email)
		return Result{}, apperr.Unauthenticated(invalidCredentials)
	}

	if h.limits != nil {
		if err := h.limits.ClearOnSuccess(ctx, in.Email); err != nil {
			h.logger.Warn("failed to clear login attempts", zap.String("email", in.Email), zap.Error(err))
		}
	}

	adminID := admin.ID.Hex()
	token, expires, err := h.tokens.Issue(adminID, admin.Email)
	if err != nil {
		return Result{}, apperr.Upstream("Login failed", err)
	}

	h.logger.Info("admin logged in", zap.String("admin_id", adminID))
	return Result{
		Token:     token,
		ExpiresAt: expires,
		ExpiresIn: int64(h.tokens.TTL() / time.Second),
		Admin:     AdminVM{ID: adminID, Email: admin.Email},
	}, nil
}

func (h *Handler) recordFailure(ctx context.Context, email string) {
	if h.limits == nil {
		h.logger.Warn("login failed", zap.String("email", email))
		return
	}
	lockedOut, until := h.limits.RecordFailure(ctx, email)
	if lockedOut {
		h.logger.Warn("login locked out",
			zap.String("email", email),
			zap.Timep("locked_until", until))
		return
	}
	h.logger.Warn("login failed", zap.String("email", email))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		h.errLog.Fail(w, r, err)
		return
	}

	res, err := h.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.errLog.Fail(w, r, err)
		return
	}
	jsonutil.Success(w, http.StatusOK, "Login successful", res)
}
