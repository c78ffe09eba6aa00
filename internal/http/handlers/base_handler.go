// README: Base handler utilities (JSON envelopes, SSE framing, error mapping).
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcopilot/internal/service"
)

const invalidJSON = "invalid json"

type errorResponse struct {
	Error string `json:"error"`
}

// envelope is the response shape of the trip endpoints. Exactly one payload
// field is set on success.
type envelope struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	PlanData     any    `json:"plan_data,omitempty"`
	UpdatedPlan  any    `json:"updated_plan,omitempty"`
	PathData     any    `json:"path_data,omitempty"`
	RoutesData   any    `json:"routes_data,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeFailure reports a failed trip operation. Bad input is a 400; every
// other failure keeps 200 with success=false.
func writeFailure(c *gin.Context, err error) {
	status := http.StatusOK
	if errors.Is(err, service.ErrBadRequest) {
		status = http.StatusBadRequest
	}
	writeJSON(c, status, envelope{Success: false, ErrorMessage: err.Error()})
}

func writeBadJSON(c *gin.Context) {
	writeJSON(c, http.StatusBadRequest, envelope{Success: false, ErrorMessage: invalidJSON})
}

const (
	frameChunk = "chunk"
	frameEnd   = "end"
	frameError = "error"

	streamErrorPrefix = "抱歉，我遇到了一些技术问题。请稍后再试。错误信息："
)

type sseFrame struct {
	Content string `json:"content,omitempty"`
	Type    string `json:"type"`
}

func startSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
}

func writeFrame(c *gin.Context, f sseFrame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", b); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

// streamSSE runs stream and frames every chunk. A stream error becomes an
// error frame; the end frame is always sent.
func streamSSE(c *gin.Context, stream func(onChunk func(string) error) error) error {
	startSSE(c)
	err := stream(func(chunk string) error {
		if chunk == "" {
			return nil
		}
		return writeFrame(c, sseFrame{Content: chunk, Type: frameChunk})
	})
	if err != nil {
		_ = writeFrame(c, sseFrame{Content: streamErrorPrefix + err.Error(), Type: frameError})
	}
	_ = writeFrame(c, sseFrame{Type: frameEnd})
	return err
}
