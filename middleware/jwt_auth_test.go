package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func testAuthConfig() JWTAuthConfig {
	return JWTAuthConfig{
		SigningSecret:  testSecret,
		ExpectedIssuer: "craftmarket-admin",
		RequiredGroup:  "Marketplace_Admins",
	}
}

func signTestToken(t *testing.T, claims adminClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func adminToken(t *testing.T) string {
	return signTestToken(t, adminClaims{
		Groups: []string{"Marketplace_Admins"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    "craftmarket-admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)
}

func protectedHandler(t *testing.T) (http.Handler, *string) {
	var seenAdmin string
	m := NewJWTAuthMiddleware(testAuthConfig())
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := AdminIDFromContext(r.Context()); ok {
			seenAdmin = id
		}
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenAdmin
}

func TestAuthenticate_ValidToken(t *testing.T) {
	h, seenAdmin := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", *seenAdmin)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	h, _ := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	h, _ := protectedHandler(t)

	token := signTestToken(t, adminClaims{
		Groups: []string{"Marketplace_Admins"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    "craftmarket-admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, []byte("some-other-secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h, _ := protectedHandler(t)

	token := signTestToken(t, adminClaims{
		Groups: []string{"Marketplace_Admins"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    "craftmarket-admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongIssuer(t *testing.T) {
	h, _ := protectedHandler(t)

	token := signTestToken(t, adminClaims{
		Groups: []string{"Marketplace_Admins"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MissingGroup(t *testing.T) {
	h, _ := protectedHandler(t)

	token := signTestToken(t, adminClaims{
		Groups: []string{"Sellers"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-9",
			Issuer:    "craftmarket-admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthConfig_Validate(t *testing.T) {
	assert.NoError(t, testAuthConfig().Validate())

	cfg := testAuthConfig()
	cfg.SigningSecret = nil
	assert.Error(t, cfg.Validate())

	cfg = testAuthConfig()
	cfg.ExpectedIssuer = ""
	assert.Error(t, cfg.Validate())

	cfg = testAuthConfig()
	cfg.RequiredGroup = ""
	assert.Error(t, cfg.Validate())
}
