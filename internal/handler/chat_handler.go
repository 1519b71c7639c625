package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"personaai/internal/chat"
)

// ChatRequest carries the caller's conversation history. The compiled
// persona system message is prepended server-side and never echoed back.
type ChatRequest struct {
	Messages []chat.Message `json:"messages" binding:"required"`
}

type streamChunk struct {
	Content string `json:"content"`
}

// Chat godoc
// @Summary      Stream a chat reply
// @Description  Sends the conversation to the default model with the persona system prompt prepended and streams the reply as server-sent events. Errors after streaming started arrive as an error event, not a status change.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "conversation history"
// @Success      200 {string} string "SSE stream of {content} chunks, terminated by [DONE]"
// @Failure      400 {object} handler.Response
// @Failure      500 {object} handler.Response
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	// Stream headers are written with the first chunk so that failures
	// before any output can still return a plain JSON error response.
	started := false
	err := h.orch.Stream(c.Request.Context(), req.Messages, func(chunk []byte) error {
		payload, err := json.Marshal(streamChunk{Content: string(chunk)})
		if err != nil {
			return err
		}
		if !started {
			setStreamHeaders(c)
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		started = true
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		if !started {
			// Response not committed yet; a plain HTTP error is still possible.
			if errors.Is(err, chat.ErrNoDefaultModel) {
				respondError(c, http.StatusInternalServerError, "No default AI model configured")
				return
			}
			h.logger.Error("chat request failed", "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to process chat request")
			return
		}
		h.logger.Error("chat stream interrupted", "error", err)
		fmt.Fprint(c.Writer, "event: error\ndata: {\"error\":\"stream interrupted\"}\n\n")
		c.Writer.Flush()
		return
	}

	if !started {
		setStreamHeaders(c)
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

func setStreamHeaders(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
}

// speechRequest is the text to voice with the character's TTS voice.
type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Speech godoc
// @Summary      Synthesize reply audio
// @Description  Converts an assistant reply to MP3 so the character can be voiced. Returns 503 when speech synthesis is disabled.
// @Tags         Chat
// @Accept       json
// @Produce      audio/mpeg
// @Security     BearerAuth
// @Param        request body handler.speechRequest true "text to synthesize"
// @Success      200 {file} file "MP3 audio"
// @Failure      400 {object} handler.Response
// @Failure      503 {object} handler.Response
// @Router       /api/chat/speech [post]
func (h *Handler) Speech(c *gin.Context) {
	if h.speech == nil {
		respondError(c, http.StatusServiceUnavailable, "Speech synthesis is not enabled")
		return
	}

	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Error("speech synthesis failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to synthesize speech")
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}
