package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/models"
)

// Client is a thin HTTP client over the WhatsApp Cloud API messages
// endpoint. It performs network I/O only; persistence belongs to the
// services calling it.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		// Provider calls must fail fast rather than hang.
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// --- Message Structures ---

type OutboundMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Text             *TextObj        `json:"text,omitempty"`
	Image            *MediaObj       `json:"image,omitempty"`
	Video            *MediaObj       `json:"video,omitempty"`
	Audio            *MediaObj       `json:"audio,omitempty"`
	Document         *MediaObj       `json:"document,omitempty"`
	Template         *TemplateObj    `json:"template,omitempty"`
	Interactive      *InteractiveObj `json:"interactive,omitempty"`
}

type TextObj struct {
	Body       string `json:"body"`
	PreviewUrl bool   `json:"preview_url,omitempty"`
}

type MediaObj struct {
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"` // documents only
}

type TemplateObj struct {
	Name     string      `json:"name"`
	Language LanguageObj `json:"language"`
}

type LanguageObj struct {
	Code string `json:"code"`
}

// InteractiveObj carries the call-initiation signal. The Cloud API
// models a voice call as an interactive message of type "call".
type InteractiveObj struct {
	Type   string    `json:"type"`
	Action ActionObj `json:"action"`
}

type ActionObj struct {
	Name       string      `json:"name"`
	Parameters *CallParams `json:"parameters,omitempty"`
}

type CallParams struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	CallID             string `json:"call_id"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// --- Sending ---

// Send posts a pre-built message payload and returns the provider
// message id.
func (c *Client) Send(ctx context.Context, msg OutboundMessage) (string, error) {
	if !c.cfg.Enabled {
		return "", models.ErrMessagingDisabled
	}
	return c.postMessages(ctx, msg)
}

func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	return c.Send(ctx, OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &TextObj{Body: body},
	})
}

func (c *Client) SendTemplate(ctx context.Context, to, templateName, languageCode string) (string, error) {
	if languageCode == "" {
		languageCode = "en"
	}
	return c.Send(ctx, OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: &TemplateObj{
			Name:     templateName,
			Language: LanguageObj{Code: languageCode},
		},
	})
}

// SendMedia sends an image, audio, video or document message by link.
// Captions are not supported on audio; filenames only on documents.
func (c *Client) SendMedia(ctx context.Context, to, mediaType, link, caption, filename string) (string, error) {
	media := &MediaObj{Link: link}
	if caption != "" && mediaType != "audio" {
		media.Caption = caption
	}
	if filename != "" && mediaType == "document" {
		media.Filename = filename
	}

	msg := OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             mediaType,
	}
	switch mediaType {
	case "image":
		msg.Image = media
	case "video":
		msg.Video = media
	case "audio":
		msg.Audio = media
	case "document":
		msg.Document = media
	default:
		return "", fmt.Errorf("unsupported media type: %s", mediaType)
	}
	return c.Send(ctx, msg)
}

// SignalCall asks the provider to start ringing the recipient. The
// call id travels in the signal parameters and comes back on every
// status webhook for this call.
func (c *Client) SignalCall(ctx context.Context, to, displayNumber, callID string) (string, error) {
	if !c.cfg.CallingEnabled {
		return "", models.ErrCallingDisabled
	}
	return c.postMessages(ctx, OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &InteractiveObj{
			Type: "call",
			Action: ActionObj{
				Name: "voice_call",
				Parameters: &CallParams{
					DisplayPhoneNumber: displayNumber,
					CallID:             callID,
				},
			},
		},
	})
}

func (c *Client) postMessages(ctx context.Context, payload OutboundMessage) (string, error) {
	if c.cfg.WhatsAppToken == "" || c.cfg.PhoneNumberID == "" {
		return "", models.ErrNotConfigured
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.cfg.APIBaseURL, c.cfg.APIVersion, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.WhatsAppToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.Unmarshal(respBody, &apiErr)
		return "", &models.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    apiErr.Error.Message,
		}
	}

	var sendResp sendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil || len(sendResp.Messages) == 0 {
		return "", &models.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    "malformed response: missing message id",
		}
	}
	return sendResp.Messages[0].ID, nil
}
