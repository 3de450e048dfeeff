package models

import (
	"time"
)

// Message represents one sent or received WhatsApp message. Rows are
// created once the provider accepted the send (or the webhook delivered
// the inbound message) and are immutable afterwards.
type Message struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Direction string `gorm:"type:varchar(20);not null" json:"direction"`

	// WaID is the counterparty phone number.
	WaID string `gorm:"type:varchar(50);index;not null" json:"wa_id"`

	Body         string `gorm:"type:text" json:"body,omitempty"`
	TemplateName string `gorm:"type:varchar(255)" json:"template_name,omitempty"`

	// ProviderMessageID is the wamid returned by the Cloud API.
	ProviderMessageID string `gorm:"type:varchar(255);index" json:"provider_message_id,omitempty"`

	ContentType string    `gorm:"type:varchar(50)" json:"content_type"`
	Status      string    `gorm:"type:varchar(20)" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Validate enforces the invariant that a message carries exactly one of
// a plain body or a template reference.
func (m *Message) Validate() error {
	if m.Body == "" && m.TemplateName == "" {
		return ErrEmptyMessage
	}
	if m.Body != "" && m.TemplateName != "" {
		return ErrAmbiguousMessage
	}
	return nil
}
