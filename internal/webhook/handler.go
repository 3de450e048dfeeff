package webhook

import (
	"context"
	"errors"
	"log"
	"net/http"

	"whatsapp-bridge/internal/config"
	intmodels "whatsapp-bridge/internal/models"
	"whatsapp-bridge/internal/ws"
	"whatsapp-bridge/pkg/models"

	"github.com/gin-gonic/gin"
)

// CallOrchestrator is the slice of the calls service the webhook needs.
type CallOrchestrator interface {
	ApplyWebhookStatus(ctx context.Context, callID string, status intmodels.CallStatus, update intmodels.StatusUpdate) (*intmodels.Call, error)
	RecordIncomingCall(ctx context.Context, from, to, providerCallID string) (*intmodels.Call, error)
}

// MessageRecorder stores inbound messages.
type MessageRecorder interface {
	RecordInbound(ctx context.Context, from, body, contentType, providerMessageID string) (*intmodels.Message, error)
}

type Handler struct {
	Config   *config.Config
	Calls    CallOrchestrator
	Messages MessageRecorder
	Hub      *ws.Hub
}

func NewHandler(cfg *config.Config, calls CallOrchestrator, messages MessageRecorder, hub *ws.Hub) *Handler {
	return &Handler{
		Config:   cfg,
		Calls:    calls,
		Messages: messages,
		Hub:      hub,
	}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			log.Println("Webhook verified successfully!")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

// HandleEvent processes one webhook delivery. Processing errors are
// logged and answered with 200 so the provider does not retry-storm us;
// only a body we cannot parse gets a 400.
func (h *Handler) HandleEvent(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			value := change.Value
			for _, ev := range value.Calls {
				h.handleCallEvent(c.Request.Context(), ev)
			}
			for _, msg := range value.Messages {
				h.handleInboundMessage(c.Request.Context(), msg)
			}
		}
	}

	c.Status(http.StatusOK)
}

func (h *Handler) handleCallEvent(ctx context.Context, ev models.CallEvent) {
	status := intmodels.CallStatus(ev.Status)
	update := intmodels.StatusUpdate{}
	if h.Config.CallRecordingEnabled {
		update.RecordingURL = ev.RecordingURL
	}

	call, err := h.Calls.ApplyWebhookStatus(ctx, ev.ID, status, update)
	if errors.Is(err, intmodels.ErrCallNotFound) && status == intmodels.CallStatusRinging && ev.From != "" {
		// First signal of a provider-originated call.
		call, err = h.Calls.RecordIncomingCall(ctx, ev.From, ev.To, ev.ID)
	}
	if err != nil {
		log.Printf("Call event %s (%s) not applied: %v", ev.ID, ev.Status, err)
		return
	}

	log.Printf("Call %s is now %s", call.ID, call.Status)
	if h.Hub != nil {
		h.Hub.NotifyCall(*call)
	}
}

func (h *Handler) handleInboundMessage(ctx context.Context, msg models.InboundMessage) {
	content := ""
	switch msg.Type {
	case "text":
		content = msg.Text.Body
	case "image":
		if msg.Image != nil {
			content = "[image]:" + msg.Image.ID
			if msg.Image.Caption != "" {
				content += ":" + msg.Image.Caption
			}
		}
	case "video":
		if msg.Video != nil {
			content = "[video]:" + msg.Video.ID
		}
	case "audio":
		if msg.Audio != nil {
			content = "[audio]:" + msg.Audio.ID
		}
	case "document":
		if msg.Document != nil {
			content = "[document]:" + msg.Document.ID
			if msg.Document.Filename != "" {
				content += ":" + msg.Document.Filename
			}
		}
	default:
		content = "[" + msg.Type + "]"
	}
	log.Printf("Received %s message from %s", msg.Type, msg.From)

	stored, err := h.Messages.RecordInbound(ctx, msg.From, content, msg.Type, msg.ID)
	if err != nil {
		log.Printf("Error storing inbound message %s: %v", msg.ID, err)
		return
	}
	if h.Hub != nil {
		h.Hub.NotifyMessage(*stored)
	}
}
