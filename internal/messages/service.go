package messages

import (
	"context"

	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/models"
)

const defaultListLimit = 50

// Sender is the provider-side dependency. Satisfied by *whatsapp.Client.
type Sender interface {
	SendText(ctx context.Context, to, body string) (string, error)
	SendTemplate(ctx context.Context, to, templateName, languageCode string) (string, error)
	SendMedia(ctx context.Context, to, mediaType, link, caption, filename string) (string, error)
}

// Store persists message records.
type Store interface {
	Create(ctx context.Context, msg *models.Message) error
	List(ctx context.Context, waID string, limit int) ([]models.Message, error)
}

// SendRequest describes one outbound message. Exactly one of Body,
// TemplateName or MediaLink must be set.
type SendRequest struct {
	To           string `json:"to" binding:"required"`
	Body         string `json:"body"`
	TemplateName string `json:"template_name"`
	LanguageCode string `json:"language_code"`
	MediaType    string `json:"media_type"` // image, audio, video, document
	MediaLink    string `json:"media_link"`
	Caption      string `json:"caption"`
	Filename     string `json:"filename"`
}

type Service struct {
	store  Store
	sender Sender
	cfg    *config.Config
}

func NewService(store Store, sender Sender, cfg *config.Config) *Service {
	return &Service{store: store, sender: sender, cfg: cfg}
}

// Send dispatches the message to the provider and, only on success,
// records it. The record is immutable afterwards; delivery-status
// webhooks are handled elsewhere.
func (s *Service) Send(ctx context.Context, req SendRequest) (*models.Message, error) {
	if !s.cfg.Enabled {
		return nil, models.ErrMessagingDisabled
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var (
		providerID  string
		err         error
		contentType string
		body        string
	)
	switch {
	case req.TemplateName != "":
		providerID, err = s.sender.SendTemplate(ctx, req.To, req.TemplateName, req.LanguageCode)
		contentType = "template"
	case req.MediaLink != "":
		providerID, err = s.sender.SendMedia(ctx, req.To, req.MediaType, req.MediaLink, req.Caption, req.Filename)
		contentType = req.MediaType
		body = req.MediaLink
	default:
		providerID, err = s.sender.SendText(ctx, req.To, req.Body)
		contentType = "text"
		body = req.Body
	}
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		Direction:         models.DirectionOutgoing,
		WaID:              req.To,
		Body:              body,
		TemplateName:      req.TemplateName,
		ProviderMessageID: providerID,
		ContentType:       contentType,
		Status:            "sent",
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// RecordInbound stores a message delivered by the webhook.
func (s *Service) RecordInbound(ctx context.Context, from, body, contentType, providerMessageID string) (*models.Message, error) {
	msg := &models.Message{
		Direction:         models.DirectionIncoming,
		WaID:              from,
		Body:              body,
		ProviderMessageID: providerMessageID,
		ContentType:       contentType,
		Status:            "received",
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns recent messages, optionally for one counterparty.
func (s *Service) List(ctx context.Context, waID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.store.List(ctx, waID, limit)
}

func validateRequest(req SendRequest) error {
	set := 0
	if req.Body != "" {
		set++
	}
	if req.TemplateName != "" {
		set++
	}
	if req.MediaLink != "" {
		set++
	}
	if set == 0 {
		return models.ErrEmptyMessage
	}
	if set > 1 {
		return models.ErrAmbiguousMessage
	}
	return nil
}
