package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/craftmarket/compliance-service/utils"
	"github.com/golang-jwt/jwt/v5"
)

// contextKey avoids collisions with other packages' context values
type contextKey string

// AdminIDContextKey is the request context key holding the authenticated
// admin's subject claim
const AdminIDContextKey contextKey = "adminID"

// JWTAuthConfig holds the admin token validation settings
type JWTAuthConfig struct {
	// SigningSecret is the HS256 shared secret for admin tokens
	SigningSecret []byte

	// ExpectedIssuer must match the token's iss claim
	ExpectedIssuer string

	// RequiredGroup must appear in the token's groups claim
	RequiredGroup string
}

// Validate checks that the JWT configuration is complete
func (c JWTAuthConfig) Validate() error {
	if len(c.SigningSecret) == 0 {
		return fmt.Errorf("signing secret is required")
	}
	if c.ExpectedIssuer == "" {
		return fmt.Errorf("expected issuer is required")
	}
	if c.RequiredGroup == "" {
		return fmt.Errorf("required group is required")
	}
	return nil
}

// JWTAuthMiddleware validates admin bearer tokens
type JWTAuthMiddleware struct {
	config JWTAuthConfig
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{config: config}
}

// adminClaims are the claims we require on admin tokens
type adminClaims struct {
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

// Authenticate verifies the Authorization bearer token and stores the admin
// subject in the request context. Requests without a valid admin token get
// 401; tokens without the required group get 403.
func (m *JWTAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.config.SigningSecret, nil
		}, jwt.WithIssuer(m.config.ExpectedIssuer), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			slog.Warn("Rejected admin token", "error", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token", nil)
			return
		}

		if !hasGroup(claims.Groups, m.config.RequiredGroup) {
			utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext returns the authenticated admin id, if any
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AdminIDContextKey).(string)
	return id, ok && id != ""
}

func hasGroup(groups []string, required string) bool {
	for _, g := range groups {
		if g == required {
			return true
		}
	}
	return false
}
