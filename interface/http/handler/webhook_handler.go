package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opbridge/op-rc-bridge/application/dto"
)

const pipelineTimeout = 30 * time.Second

type CommentPipeline interface {
	Execute(ctx context.Context, input dto.WebhookInput) dto.WebhookResult
}

type WebhookHandler struct {
	pipeline CommentPipeline
	logger   *slog.Logger
}

func NewWebhookHandler(pipeline CommentPipeline, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{pipeline: pipeline, logger: logger}
}

func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	var input dto.WebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("Failed to parse webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	result := h.pipeline.Execute(ctx, input)

	switch result.Status {
	case dto.StatusIgnored:
		// Not an error: the sender must not retry or alarm on these.
		c.JSON(http.StatusOK, gin.H{"status": result.Status, "reason": result.Reason})
	case dto.StatusSuccess:
		c.JSON(http.StatusOK, gin.H{"status": result.Status, "channel": result.Channel})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": dto.StatusError, "message": result.Message})
	}
}
