package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personaai/internal/auth"
	"personaai/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api", Authenticate(issuer))
	api.GET("/ping", func(c *gin.Context) {
		claims, ok := Identity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	api.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, issuer
}

func tokenFor(t *testing.T, issuer *auth.TokenIssuer, role models.Role) string {
	t.Helper()
	token, err := issuer.Generate(&models.User{ID: "u1", Email: "u1@example.com", Type: role})
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthenticateBadScheme(t *testing.T) {
	router, issuer := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", tokenFor(t, issuer, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticateValidToken(t *testing.T) {
	router, issuer := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1@example.com")
}

func TestRequireRoleBlocksUser(t *testing.T) {
	router, issuer := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized access")
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	router, issuer := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, issuer, models.RoleAdmin))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInviteCodeDisabled(t *testing.T) {
	router := gin.New()
	router.POST("/signup", InviteCode(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signup", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInviteCodeMismatch(t *testing.T) {
	router := gin.New()
	router.POST("/signup", InviteCode("sesame"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.Header.Set("X-Invite-Code", "wrong")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.Header.Set("X-Invite-Code", "sesame")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
