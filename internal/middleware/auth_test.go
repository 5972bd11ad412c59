package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/config"
	"gstdesk/internal/domain"
	"gstdesk/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jwtCfg = config.JWTConfig{Secret: "test-secret", Issuer: "gstdesk-test"}

func signToken(t *testing.T, claims middleware.Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(tenantID, userID uuid.UUID) middleware.Claims {
	return middleware.Claims{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
		Email:    "reviewer@example.in",
		Role:     string(domain.RoleMember),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtCfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func runAuth(token string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	middleware.AuthMiddleware(&jwtCfg)(c)
	return w, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	token := signToken(t, validClaims(tenantID, userID), jwtCfg.Secret)

	w, c := runAuth(token)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	gotTenant, err := middleware.GetTenantID(c)
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := middleware.GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)

	assert.Equal(t, string(domain.RoleMember), middleware.GetRole(c))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w, c := runAuth("")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, validClaims(uuid.New(), uuid.New()), "another-secret")

	w, c := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	claims := validClaims(uuid.New(), uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, claims, jwtCfg.Secret)

	w, c := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongIssuer(t *testing.T) {
	claims := validClaims(uuid.New(), uuid.New())
	claims.Issuer = "someone-else"
	token := signToken(t, claims, jwtCfg.Secret)

	w, c := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadTenantClaim(t *testing.T) {
	claims := validClaims(uuid.New(), uuid.New())
	claims.TenantID = "not-a-uuid"
	token := signToken(t, claims, jwtCfg.Secret)

	w, c := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-approve", nil)
	c.Set(middleware.ContextKeyRole, string(domain.RoleMember))

	middleware.RequireRole(domain.RoleAdmin)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-approve", nil)
	c2.Set(middleware.ContextKeyRole, string(domain.RoleAdmin))

	middleware.RequireRole(domain.RoleAdmin, domain.RoleMember)(c2)
	assert.False(t, c2.IsAborted())
}
