package api

import (
	"errors"
	"net/http"
	"strconv"

	"whatsapp-bridge/internal/calls"
	"whatsapp-bridge/internal/models"
	"whatsapp-bridge/internal/ws"

	"github.com/gin-gonic/gin"
)

type CallHandler struct {
	Service *calls.Service
	Hub     *ws.Hub
}

func NewCallHandler(service *calls.Service, hub *ws.Hub) *CallHandler {
	return &CallHandler{Service: service, Hub: hub}
}

type PlaceCallRequest struct {
	ToNumber string `json:"to_number" binding:"required"`
}

// PlaceCall creates and signals an outgoing call.
func (h *CallHandler) PlaceCall(c *gin.Context) {
	var req PlaceCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	call, err := h.Service.PlaceCall(c.Request.Context(), req.ToNumber)
	if err != nil {
		// The record may exist even though signaling failed; include
		// its id so the failed attempt can be looked up.
		resp := gin.H{"error": err.Error()}
		if call != nil {
			resp["call_id"] = call.ID
		}
		c.JSON(statusFor(err), resp)
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyCall(*call)
	}
	c.JSON(http.StatusOK, gin.H{
		"call_id": call.ID,
		"status":  call.Status,
	})
}

// EndCall hangs up an active call.
func (h *CallHandler) EndCall(c *gin.Context) {
	callID := c.Param("id")

	call, err := h.Service.HangUp(c.Request.Context(), callID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyCall(*call)
	}
	c.JSON(http.StatusOK, gin.H{
		"call_id":  call.ID,
		"status":   call.Status,
		"duration": call.DurationSeconds,
	})
}

// GetHistory lists calls, newest first.
func (h *CallHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	history, err := h.Service.History(c.Request.Context(), c.Query("phone_number"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetActive lists calls still in flight.
func (h *CallHandler) GetActive(c *gin.Context) {
	active, err := h.Service.Active(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, active)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var providerErr *models.ProviderError
	switch {
	case errors.Is(err, models.ErrCallNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCallNotActive),
		errors.Is(err, models.ErrCannotInitiate):
		return http.StatusConflict
	case errors.Is(err, models.ErrCallingDisabled),
		errors.Is(err, models.ErrMessagingDisabled),
		errors.Is(err, models.ErrNotConfigured),
		errors.Is(err, models.ErrInvalidCallStatus),
		errors.Is(err, models.ErrMissingNumbers),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, models.ErrAmbiguousMessage):
		return http.StatusBadRequest
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
