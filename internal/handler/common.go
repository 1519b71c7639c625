// Package handler exposes the HTTP surface: authentication, the admin
// resource API, the streaming chat endpoint and the character card.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personaai/internal/auth"
	"personaai/internal/chat"
	"personaai/internal/llm"
	"personaai/internal/storage"
)

// Response is the uniform envelope returned by every JSON endpoint.
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Handler bundles the dependencies of all HTTP handlers.
type Handler struct {
	store  *storage.Store
	tokens *auth.TokenIssuer
	orch   *chat.Orchestrator
	speech *llm.SpeechClient // nil when speech synthesis is disabled
	logger *slog.Logger
}

// New wires a Handler. speech may be nil.
func New(store *storage.Store, tokens *auth.TokenIssuer, orch *chat.Orchestrator,
	speech *llm.SpeechClient, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		tokens: tokens,
		orch:   orch,
		speech: speech,
		logger: logger.With("component", "handler"),
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}

func respondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   "Validation failed",
		Fields:  fields,
	})
}
