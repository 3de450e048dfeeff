package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"whatsapp-bridge/internal/calls"
	"whatsapp-bridge/internal/config"
	"whatsapp-bridge/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore is a tiny in-memory calls.Store.
type stubStore struct {
	calls map[string]*models.Call
}

func newStubStore() *stubStore {
	return &stubStore{calls: make(map[string]*models.Call)}
}

func (s *stubStore) Create(_ context.Context, call *models.Call) error {
	s.calls[call.ID] = call
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*models.Call, error) {
	if call, ok := s.calls[id]; ok {
		return call, nil
	}
	return nil, models.ErrCallNotFound
}

func (s *stubStore) GetByProviderID(_ context.Context, providerCallID string) (*models.Call, error) {
	for _, call := range s.calls {
		if call.ProviderCallID == providerCallID {
			return call, nil
		}
	}
	return nil, models.ErrCallNotFound
}

func (s *stubStore) Save(_ context.Context, call *models.Call) error {
	s.calls[call.ID] = call
	return nil
}

func (s *stubStore) History(_ context.Context, _ string, _ int) ([]models.Call, error) {
	var out []models.Call
	for _, call := range s.calls {
		out = append(out, *call)
	}
	return out, nil
}

func (s *stubStore) Active(_ context.Context) ([]models.Call, error) {
	var out []models.Call
	for _, call := range s.calls {
		if !call.Status.IsTerminal() {
			out = append(out, *call)
		}
	}
	return out, nil
}

type stubSignaler struct {
	id  string
	err error
}

func (s *stubSignaler) SignalCall(_ context.Context, _, _, _ string) (string, error) {
	return s.id, s.err
}

func newTestHandler(store calls.Store, signaler calls.Signaler, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCallHandler(calls.NewService(store, signaler, cfg), nil)

	router := gin.New()
	router.POST("/api/calls", handler.PlaceCall)
	router.POST("/api/calls/:id/end", handler.EndCall)
	router.GET("/api/calls", handler.GetHistory)
	router.GET("/api/calls/active", handler.GetActive)
	return router
}

func callingConfig() *config.Config {
	return &config.Config{CallingEnabled: true, PhoneNumberID: "1234567890"}
}

func TestPlaceCall_Endpoint(t *testing.T) {
	store := newStubStore()
	router := newTestHandler(store, &stubSignaler{id: "wamid.123"}, callingConfig())

	body, _ := json.Marshal(PlaceCallRequest{ToNumber: "0987654321"})
	req, _ := http.NewRequest(http.MethodPost, "/api/calls", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.NotEmpty(t, out["call_id"])
	assert.Equal(t, "ringing", out["status"])
}

func TestPlaceCall_DisabledReturns400(t *testing.T) {
	cfg := callingConfig()
	cfg.CallingEnabled = false
	router := newTestHandler(newStubStore(), &stubSignaler{}, cfg)

	body, _ := json.Marshal(PlaceCallRequest{ToNumber: "0987654321"})
	req, _ := http.NewRequest(http.MethodPost, "/api/calls", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPlaceCall_ProviderFailureReturns502WithCallID(t *testing.T) {
	store := newStubStore()
	signaler := &stubSignaler{err: &models.ProviderError{StatusCode: 500, Message: "upstream down"}}
	router := newTestHandler(store, signaler, callingConfig())

	body, _ := json.Marshal(PlaceCallRequest{ToNumber: "0987654321"})
	req, _ := http.NewRequest(http.MethodPost, "/api/calls", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadGateway, resp.Code)

	// The failed attempt is still auditable by id.
	var out map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.NotEmpty(t, out["call_id"])

	stored, err := store.Get(context.Background(), out["call_id"])
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusInitiated, stored.Status)
}

func TestEndCall_NotFoundReturns404(t *testing.T) {
	router := newTestHandler(newStubStore(), &stubSignaler{}, callingConfig())

	req, _ := http.NewRequest(http.MethodPost, "/api/calls/missing/end", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEndCall_NotActiveReturns409(t *testing.T) {
	store := newStubStore()
	store.calls["c1"] = &models.Call{ID: "c1", Direction: models.DirectionOutgoing, ToNumber: "098", Status: models.CallStatusEnded}
	router := newTestHandler(store, &stubSignaler{}, callingConfig())

	req, _ := http.NewRequest(http.MethodPost, "/api/calls/c1/end", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestGetHistory_RejectsBadLimit(t *testing.T) {
	router := newTestHandler(newStubStore(), &stubSignaler{}, callingConfig())

	req, _ := http.NewRequest(http.MethodGet, "/api/calls?limit=-3", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetActive_Endpoint(t *testing.T) {
	store := newStubStore()
	store.calls["c1"] = &models.Call{ID: "c1", Direction: models.DirectionOutgoing, ToNumber: "098", Status: models.CallStatusRinging}
	store.calls["c2"] = &models.Call{ID: "c2", Direction: models.DirectionOutgoing, ToNumber: "099", Status: models.CallStatusEnded}
	router := newTestHandler(store, &stubSignaler{}, callingConfig())

	req, _ := http.NewRequest(http.MethodGet, "/api/calls/active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var out []models.Call
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
}
