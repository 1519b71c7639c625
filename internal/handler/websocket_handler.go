package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"personaai/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// doneMarker ends each streamed reply on the websocket transport.
const doneMarker = "[DONE]"

// ChatSocket godoc
// @Summary      Chat over WebSocket
// @Description  Alternative chat transport. Connect with ws:// and authenticate via the token query parameter; each JSON frame {messages} is answered by streamed text frames terminated by [DONE].
// @Tags         Chat
// @Param        token query string true "session token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} handler.Response
// @Router       /ws/chat [get]
func (h *Handler) ChatSocket(c *gin.Context) {
	claims, err := h.tokens.Validate(c.Query("token"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "user", claims.Email, "error", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("transport", "websocket", "user", claims.Email)
	logger.Info("chat session started")

	// The request context ends when the HTTP connection does, cancelling
	// any in-flight provider stream.
	ctx := c.Request.Context()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			logger.Warn("unsupported message type", "type", msgType)
			continue
		}

		var req ChatRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			if err := conn.WriteJSON(Response{Success: false, Error: "Invalid request"}); err != nil {
				break
			}
			continue
		}

		streamErr := h.orch.Stream(ctx, req.Messages, func(chunk []byte) error {
			return conn.WriteMessage(websocket.TextMessage, chunk)
		})
		if streamErr != nil {
			logger.Error("chat stream failed", "error", streamErr)
			msg := "Failed to process chat request"
			if errors.Is(streamErr, chat.ErrNoDefaultModel) {
				msg = "No default AI model configured"
			}
			if err := conn.WriteJSON(Response{Success: false, Error: msg}); err != nil {
				break
			}
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(doneMarker)); err != nil {
			break
		}
	}

	logger.Info("chat session ended")
}
