// Package auth issues and verifies admin session tokens and gates the
// mutating content endpoints behind them.
//
// Tokens are HS256 JWTs carrying the admin id (sub) and email. They are not
// stored server-side; a token is valid while its signature checks out and it
// has not expired. There is no revocation list.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultTTL is the lifetime of an issued admin token.
const DefaultTTL = 24 * time.Hour

// Token verification errors.
var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the claims embedded in an admin token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AdminID returns the subject claim.
func (c *Claims) AdminID() string {
	return c.Subject
}

/*─────────────────────────────────────────────────────────────────────────────*
| TokenManager                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenManager signs and verifies admin tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// ConfigError is returned when the signing secret is unusable.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewTokenManager creates a TokenManager.
//
// Parameters:
//   - secret: HMAC signing secret (must be ≥32 chars in production)
//   - ttl: token lifetime (DefaultTTL when zero)
//   - production: if true, a weak or placeholder secret fails startup
//   - logger: used to warn about weak secrets in development
func NewTokenManager(secret string, ttl time.Duration, production bool, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, &ConfigError{Message: "jwt secret is empty; provide ≥32 random chars"}
	}

	isWeak := len(secret) < 32 || isDefaultKey(secret)
	if production && isWeak {
		return nil, &ConfigError{
			Message: "jwt secret is too weak for production; provide ≥32 random chars (not the default dev key)",
		}
	} else if isWeak {
		logger.Warn("jwt secret is weak; 32+ random chars required in production",
			zap.Int("length", len(secret)),
			zap.Bool("is_default", isDefaultKey(secret)))
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for the given admin.
func (tm *TokenManager) Issue(adminID, email string) (string, time.Time, error) {
	now := tm.now()
	expires := now.Add(tm.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// isDefaultKey checks if the secret appears to be a default/placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	patterns := []string{
		"dev-only",
		"change-me",
		"placeholder",
		"default",
		"example",
		"insecure",
		"secret123",
		"password",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the verified claims & "found?" flag from the request context.
func CurrentAdmin(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(currentAdminKey).(*Claims)
	return c, ok
}

// WithAdmin returns a copy of ctx carrying claims.
func WithAdmin(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, currentAdminKey, c)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
