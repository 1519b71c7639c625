package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"personaai/internal/auth"
	"personaai/internal/chat"
	"personaai/internal/middleware"
	"personaai/internal/models"
	"personaai/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	store  *storage.Store
	tokens *auth.TokenIssuer
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, stubResolver{})
}

func newTestAppWith(t *testing.T, resolver chat.ModelResolver) *testApp {
	t.Helper()

	db, err := storage.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewStore(db, logger)
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	orch := chat.New(store, resolver, 0, logger)
	h := New(store, tokens, orch, nil, logger)

	router := gin.New()
	router.POST("/signup", middleware.InviteCode(""), h.Signup)
	router.POST("/login", h.Login)
	api := router.Group("/api", middleware.Authenticate(tokens))
	api.GET("/character", h.Character)
	api.POST("/chat", h.Chat)
	api.POST("/chat/speech", h.Speech)
	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.PUT("", h.AdminUpdate)
	admin.GET("", h.AdminGet)
	admin.DELETE("", h.AdminDelete)

	return &testApp{router: router, store: store, tokens: tokens}
}

type stubResolver struct{}

func (stubResolver) Resolve(provider, modelID string) (llms.Model, error) {
	return nil, fmt.Errorf("no provider in tests")
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.Generate(&models.User{ID: "admin-1", Email: "admin@example.com", Type: models.RoleAdmin})
	require.NoError(t, err)
	return token
}

func (a *testApp) userToken(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.Generate(&models.User{ID: "user-1", Email: "user@example.com", Type: models.RoleUser})
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func personaPayload() map[string]any {
	return map[string]any{
		"action":               "updatePersona",
		"fullName":             "Sarah Chen",
		"age":                  "34",
		"residence":            "Portland",
		"passion":              "urban gardening",
		"characterTraits":      []string{"curious", "patient"},
		"personalValues":       "honesty and sustainability",
		"expertise":            "landscape design",
		"experienceLevel":      "advanced",
		"achievements":         "built a community garden network",
		"dailyRoutine":         "morning walks",
		"obstacles":            "seasonal funding gaps",
		"overcomingChallenges": "grant writing",
		"handlingPressure":     "small steps",
		"tenYearVision":        "a garden in every school",
		"fieldChange":          "environmental policy",
		"bestAdvice":           "plant what grows",
		"conversationStarter1": "What did you grow last summer?",
	}
}

func TestAdminRequiresAdminRole(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/admin?resource=users", app.userToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin?resource=users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCreatePersona(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), personaPayload())
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	w = app.do(t, http.MethodGet, "/api/admin?resource=persona", app.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sarah Chen")
}

func TestAdminPersonaValidationAbortsWrite(t *testing.T) {
	app := newTestApp(t)

	payload := personaPayload()
	payload["fullName"] = ""
	payload["age"] = "300"

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Equal(t, "Full name is required", resp.Fields["fullName"])
	assert.Equal(t, "Age must be between 1 and 120", resp.Fields["age"])

	// Nothing was persisted.
	w = app.do(t, http.MethodGet, "/api/admin?resource=persona", app.adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUpdatePersonaByID(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), personaPayload())
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	created, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	id := created["id"].(float64)

	payload := personaPayload()
	payload["id"] = fmt.Sprintf("%.0f", id)
	payload["fullName"] = "Sarah Chen-Lee"
	w = app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/admin?resource=persona&id=%.0f", id), app.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sarah Chen-Lee")
}

func TestAdminInvalidAction(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), map[string]any{"action": "explode"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid action")
}

func TestAdminModelConfigDefaultMoves(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	w := app.do(t, http.MethodPut, "/api/admin", token, map[string]any{
		"action": "updateModelConfig", "name": "GPT-4o", "provider": "openai", "modelId": "gpt-4o", "isDefault": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPut, "/api/admin", token, map[string]any{
		"action": "updateModelConfig", "name": "Claude", "provider": "anthropic", "modelId": "claude-3-5-sonnet-latest", "isDefault": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin?resource=models", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.ModelConfig `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	defaults := 0
	for _, m := range resp.Data {
		if m.IsDefault {
			defaults++
			assert.Equal(t, "Claude", m.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAdminSystemPromptRequiresContent(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), map[string]any{
		"action": "updateSystemPrompt", "content": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Content is required")
}

func TestAdminCreateUserRequiresPassword(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), map[string]any{
		"action": "updateUser", "name": "New User", "email": "new@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password is required for new users")
}

func TestAdminCreateUserInvalidRole(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), map[string]any{
		"action": "updateUser", "name": "New User", "email": "new@example.com", "type": "superuser", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user type")
}

func TestAdminDelete(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	w := app.do(t, http.MethodPut, "/api/admin", token, personaPayload())
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	id := resp.Data.(map[string]any)["id"].(float64)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin?resource=persona&id=%.0f", id), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin?resource=persona&id=%.0f", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/api/admin?resource=persona&id=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodDelete, "/api/admin?resource=persona", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ID is required")
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/signup", "", map[string]any{
		"name": "John", "email": "john@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret1")

	w = app.do(t, http.MethodPost, "/signup", "", map[string]any{
		"name": "John Again", "email": "john@example.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")

	w = app.do(t, http.MethodPost, "/login", "", map[string]any{
		"email": "john@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.NotEmpty(t, data["token"])

	w = app.do(t, http.MethodPost, "/login", "", map[string]any{
		"email": "john@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestCharacterCard(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/character", app.userToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPut, "/api/admin", app.adminToken(t), personaPayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/character", app.userToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sarah Chen")
	assert.Contains(t, w.Body.String(), "What did you grow last summer?")
	// The card exposes display fields only.
	assert.NotContains(t, w.Body.String(), "tenYearVision")
}
