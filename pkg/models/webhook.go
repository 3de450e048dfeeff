package models

// WebhookPayload is the incoming JSON envelope from the WhatsApp Cloud
// API. Only the fields this gateway consumes are modeled.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Metadata         struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Messages []InboundMessage `json:"messages,omitempty"`
				Statuses []MessageStatus  `json:"statuses,omitempty"`
				Calls    []CallEvent      `json:"calls,omitempty"`
			} `json:"value"`
			Field string `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

// InboundMessage is one message delivered to us.
type InboundMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Image    *MediaMessage `json:"image,omitempty"`
	Video    *MediaMessage `json:"video,omitempty"`
	Audio    *MediaMessage `json:"audio,omitempty"`
	Document *MediaMessage `json:"document,omitempty"`
}

// MediaMessage is a media attachment reference in an inbound message.
type MediaMessage struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// MessageStatus is a delivery-status update for an outbound message.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// CallEvent reports a voice-call status change. ID is the call_id we
// put into the signal parameters for outgoing calls, or the provider's
// own call reference for incoming ones.
type CallEvent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
	Timestamp    string `json:"timestamp"`
	RecordingURL string `json:"recording_url,omitempty"`
}
