package models

import (
	"time"

	"github.com/google/uuid"
)

type CallStatus string

const (
	CallStatusInitiated CallStatus = "initiated"
	CallStatusRinging   CallStatus = "ringing"
	CallStatusAnswered  CallStatus = "answered"
	CallStatusEnded     CallStatus = "ended"
	CallStatusMissed    CallStatus = "missed"
	CallStatusFailed    CallStatus = "failed"
)

const (
	DirectionOutgoing = "Outgoing"
	DirectionIncoming = "Incoming"
)

// IsValid reports whether s is one of the six known statuses.
func (s CallStatus) IsValid() bool {
	switch s {
	case CallStatusInitiated, CallStatusRinging, CallStatusAnswered,
		CallStatusEnded, CallStatusMissed, CallStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the call lifecycle.
func (s CallStatus) IsTerminal() bool {
	switch s {
	case CallStatusEnded, CallStatusMissed, CallStatusFailed:
		return true
	}
	return false
}

// ActiveStatuses are the statuses of calls that are still in flight.
func ActiveStatuses() []CallStatus {
	return []CallStatus{CallStatusInitiated, CallStatusRinging, CallStatusAnswered}
}

// Call represents one voice call attempt. Records are never deleted
// here; retention is the database owner's concern.
type Call struct {
	ID         string     `gorm:"primaryKey;type:varchar(64)" json:"call_id"`
	Direction  string     `gorm:"type:varchar(20);not null" json:"direction"`
	FromNumber string     `gorm:"type:varchar(50);index" json:"from_number"`
	ToNumber   string     `gorm:"type:varchar(50)" json:"to_number"`
	Status     CallStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// ProviderCallID is the Cloud API reference, set once the call
	// signal (or the first inbound event) has been accepted upstream.
	ProviderCallID string `gorm:"type:varchar(255);index" json:"provider_call_id,omitempty"`

	RecordingURL string `gorm:"type:text" json:"recording_url,omitempty"`

	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int       `json:"duration,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Call) TableName() string {
	return "calls"
}

// StatusUpdate is the allow-list of extra fields a status webhook may
// merge into a call record.
type StatusUpdate struct {
	ProviderCallID string
	RecordingURL   string
}

// NewOutgoingCall builds a fresh outgoing call in the initiated state.
func NewOutgoingCall(from, to string) (*Call, error) {
	call := &Call{
		ID:         uuid.NewString(),
		Direction:  DirectionOutgoing,
		FromNumber: from,
		ToNumber:   to,
		Status:     CallStatusInitiated,
	}
	if err := call.Validate(); err != nil {
		return nil, err
	}
	return call, nil
}

// NewIncomingCall builds a call record for the first inbound signal of
// a provider-originated call.
func NewIncomingCall(from, to, providerCallID string) (*Call, error) {
	call := &Call{
		ID:             uuid.NewString(),
		Direction:      DirectionIncoming,
		FromNumber:     from,
		ToNumber:       to,
		Status:         CallStatusRinging,
		ProviderCallID: providerCallID,
	}
	if err := call.Validate(); err != nil {
		return nil, err
	}
	return call, nil
}

func (c *Call) Validate() error {
	if !c.Status.IsValid() {
		return ErrInvalidCallStatus
	}
	if c.FromNumber == "" && c.ToNumber == "" {
		return ErrMissingNumbers
	}
	return nil
}

// MarkRinging records a successful call signal. Only a fresh outgoing
// call can be initiated; on provider failure the caller leaves the
// record in initiated so the attempt stays auditable.
func (c *Call) MarkRinging(providerCallID string) error {
	if c.Status != CallStatusInitiated || c.Direction != DirectionOutgoing {
		return ErrCannotInitiate
	}
	c.ProviderCallID = providerCallID
	c.Status = CallStatusRinging
	return nil
}

// ApplyStatus applies a webhook-driven status change. Timestamps are
// only ever set once, which makes duplicate terminal webhooks no-ops
// for started_at, ended_at and duration.
func (c *Call) ApplyStatus(status CallStatus, update StatusUpdate, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidCallStatus
	}

	c.Status = status

	if status == CallStatusAnswered && c.StartedAt == nil {
		t := now
		c.StartedAt = &t
	}
	if status.IsTerminal() {
		if c.EndedAt == nil {
			t := now
			c.EndedAt = &t
		}
		c.recomputeDuration()
	}

	if update.ProviderCallID != "" {
		c.ProviderCallID = update.ProviderCallID
	}
	if update.RecordingURL != "" {
		c.RecordingURL = update.RecordingURL
	}
	return nil
}

// End terminates the call locally, as opposed to a webhook doing it.
func (c *Call) End(now time.Time) error {
	if c.Status != CallStatusAnswered && c.Status != CallStatusRinging {
		return ErrCallNotActive
	}
	c.Status = CallStatusEnded
	t := now
	c.EndedAt = &t
	c.recomputeDuration()
	return nil
}

// recomputeDuration derives whole seconds from the two timestamps. A
// call that never got started_at keeps a nil duration: absence means
// the call did not connect, which zero would not.
func (c *Call) recomputeDuration() {
	if c.StartedAt == nil || c.EndedAt == nil {
		return
	}
	d := int(c.EndedAt.Sub(*c.StartedAt).Seconds())
	c.DurationSeconds = &d
}
