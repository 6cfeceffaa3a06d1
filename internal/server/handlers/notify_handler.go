package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	service "github.com/mamadbah2/poultry-stock/internal/service/whatsapp"
)

// NotifyHandler pushes manual WhatsApp messages.
type NotifyHandler struct {
	svc    service.Notifier
	logger *zap.Logger
}

// NewNotifyHandler constructs the HTTP handler adapter.
func NewNotifyHandler(svc service.Notifier, logger *zap.Logger) *NotifyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifyHandler{svc: svc, logger: logger}
}

// SendMessage sends an operator message, to the owner unless a recipient is given.
func (h *NotifyHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
