// README: Streamed chat endpoint.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripcopilot/internal/modules/chat"
)

type ChatHandler struct {
	assistant *chat.Assistant
	timeout   time.Duration
	logger    *slog.Logger
}

func NewChatHandler(assistant *chat.Assistant, timeout time.Duration, logger *slog.Logger) *ChatHandler {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{assistant: assistant, timeout: timeout, logger: logger}
}

type chatReq struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// Stream handles POST /api/chat/stream.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, invalidJSON)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	err := streamSSE(c, func(onChunk func(string) error) error {
		return h.assistant.Stream(ctx, req.Message, req.Context, onChunk)
	})
	if err != nil {
		h.logger.Warn("chat stream failed", slog.Any("error", err))
	}
}
