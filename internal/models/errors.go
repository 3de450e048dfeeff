package models

import (
	"errors"
	"fmt"
)

// Configuration errors. The requested operation cannot proceed and
// retrying without a settings change is pointless.
var (
	ErrMessagingDisabled = errors.New("whatsapp messaging is not enabled in settings")
	ErrCallingDisabled   = errors.New("whatsapp calling is not enabled in settings")
	ErrNotConfigured     = errors.New("whatsapp token or phone number id is not configured")
)

// Validation errors.
var (
	ErrInvalidCallStatus = errors.New("invalid call status")
	ErrMissingNumbers    = errors.New("either from number or to number is required")
	ErrEmptyMessage      = errors.New("message body, template or media is required")
	ErrAmbiguousMessage  = errors.New("only one of body, template or media may be set")
)

// State and lookup errors.
var (
	ErrCallNotFound   = errors.New("call not found")
	ErrCallNotActive  = errors.New("call is not active")
	ErrCannotInitiate = errors.New("call can only be initiated from the initiated state")
)

// ProviderError is an upstream Cloud API failure. Message carries the
// provider's own error message when the response body had one.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("whatsapp api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("whatsapp api error: %s", e.Message)
}
