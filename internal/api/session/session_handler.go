package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voyagio/voyagio-server/internal/api"
	"github.com/voyagio/voyagio-server/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	AppendMessage(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdatePersona(w http.ResponseWriter, r *http.Request)
	UpdateTripDetails(w http.ResponseWriter, r *http.Request)
	UpdatePricing(w http.ResponseWriter, r *http.Request)
	AddItinerary(w http.ResponseWriter, r *http.Request)
	GetItinerary(w http.ResponseWriter, r *http.Request)
	GetAllItineraries(w http.ResponseWriter, r *http.Request)
	AddCustomization(w http.ResponseWriter, r *http.Request)
	GetCustomizations(w http.ResponseWriter, r *http.Request)
	AddBooking(w http.ResponseWriter, r *http.Request)
	GetBookings(w http.ResponseWriter, r *http.Request)
	SetContext(w http.ResponseWriter, r *http.Request)
	GetContext(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	sessionService Service
	logger         *slog.Logger
}

// NewHandlerImpl creates a new session HandlerImpl instance.
func NewHandlerImpl(sessionService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		sessionService: sessionService,
		logger:         logger,
	}
}

// GetSession returns the full session state, creating it on first touch.
func (h *HandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess := h.sessionService.GetSession(r.Context(), sessionID)
	api.WriteJSONResponse(w, r, http.StatusOK, sess)
}

func (h *HandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.sessionService.ClearSession(r.Context(), sessionID)
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var req struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Key == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "key is required")
		return
	}
	h.sessionService.UpdateField(r.Context(), sessionID, req.Key, req.Value)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}

func (h *HandlerImpl) AppendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "AppendMessage"))
	sessionID := chi.URLParam(r, "sessionID")

	var req struct {
		Role    types.MessageRole `json:"role"`
		Content string            `json:"content"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid message payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = types.RoleUser
	}
	msg := h.sessionService.AppendMessage(ctx, sessionID, req.Role, req.Content)
	api.WriteJSONResponse(w, r, http.StatusCreated, msg)
}

func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	h.updateMapField(w, r, h.sessionService.SetProfile)
}

func (h *HandlerImpl) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	h.updateMapField(w, r, h.sessionService.SetPersona)
}

func (h *HandlerImpl) UpdateTripDetails(w http.ResponseWriter, r *http.Request) {
	h.updateMapField(w, r, h.sessionService.SetTripDetails)
}

func (h *HandlerImpl) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	h.updateMapField(w, r, h.sessionService.SetPricing)
}

func (h *HandlerImpl) AddItinerary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	itineraryID := chi.URLParam(r, "itineraryID")
	var payload any
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.sessionService.AddItinerary(r.Context(), sessionID, itineraryID, payload)
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]any{"itinerary_id": itineraryID})
}

func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	itineraryID := chi.URLParam(r, "itineraryID")
	payload, ok := h.sessionService.GetItinerary(r.Context(), sessionID, itineraryID)
	if !ok {
		api.ErrorResponse(w, r, http.StatusNotFound, "itinerary not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, payload)
}

func (h *HandlerImpl) GetAllItineraries(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	itineraries := h.sessionService.GetAllItineraries(r.Context(), sessionID)
	api.WriteJSONResponse(w, r, http.StatusOK, itineraries)
}

func (h *HandlerImpl) AddCustomization(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var payload map[string]any
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	entry := h.sessionService.AddCustomization(r.Context(), sessionID, payload)
	api.WriteJSONResponse(w, r, http.StatusCreated, entry)
}

func (h *HandlerImpl) GetCustomizations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	customizations := h.sessionService.GetCustomizations(r.Context(), sessionID)
	api.WriteJSONResponse(w, r, http.StatusOK, customizations)
}

func (h *HandlerImpl) AddBooking(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var payload map[string]any
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	// Bookings carry a server-assigned confirmation reference.
	if _, ok := payload["booking_reference"]; !ok {
		payload["booking_reference"] = uuid.New().String()
	}
	entry := h.sessionService.AddBooking(r.Context(), sessionID, payload)
	api.WriteJSONResponse(w, r, http.StatusCreated, entry)
}

func (h *HandlerImpl) GetBookings(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	bookings := h.sessionService.GetBookings(r.Context(), sessionID)
	api.WriteJSONResponse(w, r, http.StatusOK, bookings)
}

func (h *HandlerImpl) SetContext(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var req struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Key == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "key is required")
		return
	}
	h.sessionService.SetContext(r.Context(), sessionID, req.Key, req.Value)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}

// GetContext reads a single key from the auxiliary context mapping. A missing
// key is an empty result, not an error.
func (h *HandlerImpl) GetContext(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	key := chi.URLParam(r, "key")
	value, ok := h.sessionService.GetContext(r.Context(), sessionID, key)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"key":   key,
		"value": value,
		"found": ok,
	})
}

func (h *HandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.sessionService.Stats(r.Context())
	api.WriteJSONResponse(w, r, http.StatusOK, stats)
}

func (h *HandlerImpl) updateMapField(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id string, m map[string]any)) {
	sessionID := chi.URLParam(r, "sessionID")
	var payload map[string]any
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	set(r.Context(), sessionID, payload)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{"success": true})
}
