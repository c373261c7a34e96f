package login

import (
	"net/http"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	adminstore "github.com/dalemusser/stratatour/internal/app/store/admins"
	ratelimitstore "github.com/dalemusser/stratatour/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/authutil"
	"github.com/dalemusser/stratatour/internal/app/system/ratelimit"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testPassword = "Volga-River-2024"

func newHandler(t *testing.T, limits func(db *mongo.Database) *ratelimitstore.Store) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := authutil.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if _, err := adminstore.New(db).Create(ctx, "admin@x.com", hash); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	var ls *ratelimitstore.Store
	if limits != nil {
		ls = limits(db)
	}
	logger := zap.NewNop()
	return NewHandler(db, testutil.TokenManager(t), ls, errorsfeature.NewErrorLogger(logger), logger), db
}

func TestLogin_Success(t *testing.T) {
	h, _ := newHandler(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := h.Login(ctx, "  ADMIN@x.com ", testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Admin.Email != "admin@x.com" {
		t.Errorf("Admin.Email = %q", res.Admin.Email)
	}

	claims, err := h.tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.AdminID() != res.Admin.ID || claims.Email != "admin@x.com" {
		t.Errorf("claims = %+v", claims)
	}
	if d := time.Until(res.ExpiresAt); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("ExpiresAt in %v, want about 24h", d)
	}
	if res.ExpiresIn != int64((24 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn = %d, want %d", res.ExpiresIn, int64((24 * time.Hour).Seconds()))
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	h, _ := newHandler(t, nil)

	send := func(email, password string) *testutil.ResponseRecorder {
		rec := testutil.NewRecorder()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    email,
			"password": password,
		})
		Routes(h, nil).ServeHTTP(rec, req)
		return rec
	}

	wrongPass := send("admin@x.com", "wrongpass")
	unknown := send("nobody@x.com", "anything")

	wrongPass.AssertStatus(t, http.StatusUnauthorized)
	unknown.AssertStatus(t, http.StatusUnauthorized)
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ:\n  wrong password: %s\n  unknown email:  %s", wrongPass.Body.String(), unknown.Body.String())
	}
	env := wrongPass.Envelope(t, nil)
	if env.Success || env.Error != invalidCredentials {
		t.Errorf("envelope = %+v", env)
	}
}

func TestLogin_Validation(t *testing.T) {
	h, _ := newHandler(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name, email, password string
	}{
		{"missing email", "", "x"},
		{"malformed email", "admin", "x"},
		{"missing password", "admin@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Login(ctx, tt.email, tt.password)
			if !apperr.Is(err, apperr.KindInvalidInput) {
				t.Errorf("Login() error = %v, want InvalidInput", err)
			}
		})
	}
}

func TestLogin_MalformedJSON(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	Routes(h, nil).ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", "{not json"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestLogin_Lockout(t *testing.T) {
	h, _ := newHandler(t, func(db *mongo.Database) *ratelimitstore.Store {
		return ratelimitstore.New(db, 3, 15*time.Minute, 15*time.Minute)
	})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := h.Login(ctx, "admin@x.com", "wrongpass"); !apperr.Is(err, apperr.KindUnauthenticated) {
			t.Fatalf("attempt %d error = %v, want Unauthenticated", i+1, err)
		}
	}

	// Locked even with the right password.
	_, err := h.Login(ctx, "admin@x.com", testPassword)
	if !apperr.Is(err, apperr.KindRateLimited) {
		t.Errorf("Login() after lockout error = %v, want RateLimited", err)
	}
}

func TestLogin_SuccessClearsFailures(t *testing.T) {
	var limits *ratelimitstore.Store
	h, _ := newHandler(t, func(db *mongo.Database) *ratelimitstore.Store {
		limits = ratelimitstore.New(db, 5, 15*time.Minute, 15*time.Minute)
		return limits
	})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _ = h.Login(ctx, "admin@x.com", "wrongpass")
	if _, err := h.Login(ctx, "admin@x.com", testPassword); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	attempt, err := limits.GetAttempt(ctx, "admin@x.com")
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if attempt != nil {
		t.Errorf("attempts not cleared: %+v", attempt)
	}
}

func TestRoutes_IPLimiter(t *testing.T) {
	h, _ := newHandler(t, nil)
	router := Routes(h, ratelimit.PerMinute(1))

	body := map[string]string{"email": "admin@x.com", "password": "wrongpass"}
	first := testutil.NewRecorder()
	router.ServeHTTP(first, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	first.AssertStatus(t, http.StatusUnauthorized)

	second := testutil.NewRecorder()
	router.ServeHTTP(second, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
	second.AssertStatus(t, http.StatusTooManyRequests)
}

func TestRoutes_SuccessEnvelope(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]string{
		"email":    "admin@x.com",
		"password": testPassword,
	})
	Routes(h, nil).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var res Result
	env := rec.Envelope(t, &res)
	if !env.Success || env.Message != "Login successful" {
		t.Errorf("envelope = %+v", env)
	}
	if res.Token == "" || res.Admin.Email != "admin@x.com" {
		t.Errorf("result = %+v", res)
	}
}
