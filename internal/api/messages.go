package api

import (
	"net/http"
	"strconv"

	"whatsapp-bridge/internal/messages"
	"whatsapp-bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	Service *messages.Service
	Hub     *ws.Hub
}

func NewMessageHandler(service *messages.Service, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{Service: service, Hub: hub}
}

// SendMessage sends a text, template or media message.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req messages.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Service.Send(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyMessage(*msg)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "Message sent",
		"message_id": msg.ProviderMessageID,
	})
}

// GetMessages lists stored messages, newest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	list, err := h.Service.List(c.Request.Context(), c.Query("wa_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
