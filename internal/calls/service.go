package calls

import (
	"context"
	"errors"
	"log"
	"time"

	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/models"
)

const defaultHistoryLimit = 20

// Signaler is the provider-side dependency: ask WhatsApp to start
// ringing a number. Satisfied by *whatsapp.Client.
type Signaler interface {
	SignalCall(ctx context.Context, to, displayNumber, callID string) (string, error)
}

// Store persists call records. Load-mutate-save is assumed to be
// serialized per call id by the caller or the database.
type Store interface {
	Create(ctx context.Context, call *models.Call) error
	Get(ctx context.Context, id string) (*models.Call, error)
	GetByProviderID(ctx context.Context, providerCallID string) (*models.Call, error)
	Save(ctx context.Context, call *models.Call) error
	History(ctx context.Context, fromNumber string, limit int) ([]models.Call, error)
	Active(ctx context.Context) ([]models.Call, error)
}

// Service owns the call lifecycle: creation, provider signaling,
// webhook status updates and queries.
type Service struct {
	store    Store
	signaler Signaler
	cfg      *config.Config

	now func() time.Time
}

func NewService(store Store, signaler Signaler, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		signaler: signaler,
		cfg:      cfg,
		now:      time.Now,
	}
}

// PlaceCall creates an outgoing call and signals the provider. On
// provider failure the record is kept in initiated, not rolled back,
// so failed attempts remain auditable.
func (s *Service) PlaceCall(ctx context.Context, toNumber string) (*models.Call, error) {
	if !s.cfg.CallingEnabled {
		return nil, models.ErrCallingDisabled
	}

	call, err := models.NewOutgoingCall(s.cfg.PhoneNumberID, toNumber)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, call); err != nil {
		return nil, err
	}

	providerID, err := s.signaler.SignalCall(ctx, call.ToNumber, call.FromNumber, call.ID)
	if err != nil {
		log.Printf("Call %s: provider signal failed: %v", call.ID, err)
		return call, err
	}

	if err := call.MarkRinging(providerID); err != nil {
		return call, err
	}
	if err := s.store.Save(ctx, call); err != nil {
		return call, err
	}
	return call, nil
}

// HangUp ends a call from our side.
func (s *Service) HangUp(ctx context.Context, callID string) (*models.Call, error) {
	call, err := s.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	if err := call.End(s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// ApplyWebhookStatus applies a provider-reported status change. The id
// may be ours (we put it in the signal parameters) or the provider's
// own call reference.
func (s *Service) ApplyWebhookStatus(ctx context.Context, callID string, status models.CallStatus, update models.StatusUpdate) (*models.Call, error) {
	call, err := s.store.Get(ctx, callID)
	if errors.Is(err, models.ErrCallNotFound) {
		call, err = s.store.GetByProviderID(ctx, callID)
	}
	if err != nil {
		return nil, err
	}
	if err := call.ApplyStatus(status, update, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// RecordIncomingCall creates a record for a provider-originated call on
// its first inbound signal.
func (s *Service) RecordIncomingCall(ctx context.Context, from, to, providerCallID string) (*models.Call, error) {
	call, err := models.NewIncomingCall(from, to, providerCallID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// History returns calls newest first, optionally filtered by the
// originating number.
func (s *Service) History(ctx context.Context, phoneNumber string, limit int) ([]models.Call, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.History(ctx, phoneNumber, limit)
}

// Active returns calls still in flight.
func (s *Service) Active(ctx context.Context) ([]models.Call, error) {
	return s.store.Active(ctx)
}
