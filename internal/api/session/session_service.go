package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/voyagio/voyagio-server/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the full per-user conversational state surface. Absence is never
// an error anywhere in this interface: unknown session identifiers are
// resolved by lazy creation, missing keys read as empty defaults.
type Service interface {
	GetSession(ctx context.Context, id string) *types.Session
	UpdateField(ctx context.Context, id, key string, value any)
	AppendMessage(ctx context.Context, id string, role types.MessageRole, content string) types.Message

	SetProfile(ctx context.Context, id string, profile map[string]any)
	GetProfile(ctx context.Context, id string) map[string]any
	SetPersona(ctx context.Context, id string, persona map[string]any)
	GetPersona(ctx context.Context, id string) map[string]any
	SetTripDetails(ctx context.Context, id string, details map[string]any)
	GetTripDetails(ctx context.Context, id string) map[string]any
	SetPricing(ctx context.Context, id string, pricing map[string]any)
	GetPricing(ctx context.Context, id string) map[string]any

	AddItinerary(ctx context.Context, id, itineraryID string, payload any)
	GetItinerary(ctx context.Context, id, itineraryID string) (any, bool)
	GetAllItineraries(ctx context.Context, id string) map[string]any

	AddCustomization(ctx context.Context, id string, payload map[string]any) types.TimestampedEntry
	GetCustomizations(ctx context.Context, id string) []types.TimestampedEntry
	AddBooking(ctx context.Context, id string, payload map[string]any) types.TimestampedEntry
	GetBookings(ctx context.Context, id string) []types.TimestampedEntry

	SetContext(ctx context.Context, id, key string, value any)
	GetContext(ctx context.Context, id, key string) (any, bool)

	ClearSession(ctx context.Context, id string)
	Stats(ctx context.Context) types.SessionStats
}

type ServiceImpl struct {
	logger *slog.Logger
	store  Store
}

// NewServiceImpl creates a new session service over the given store.
func NewServiceImpl(store Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		store:  store,
	}
}

// getOrCreate returns the live session for id, creating an empty one on first
// touch. First touch is the lifecycle start; there is no "not found" path.
func (s *ServiceImpl) getOrCreate(id string) *types.Session {
	if sess, ok := s.store.Get(id); ok {
		return sess
	}
	now := time.Now()
	sess := &types.Session{
		ID:             id,
		CreatedAt:      now,
		UpdatedAt:      now,
		Messages:       []types.Message{},
		Profile:        map[string]any{},
		Persona:        map[string]any{},
		TripDetails:    map[string]any{},
		Itineraries:    map[string]any{},
		Customizations: []types.TimestampedEntry{},
		Pricing:        map[string]any{},
		Bookings:       []types.TimestampedEntry{},
		Context:        map[string]any{},
	}
	s.store.Upsert(id, sess)
	s.logger.Debug("Created new session", slog.String("sessionID", id))
	return sess
}

func (s *ServiceImpl) touch(sess *types.Session) {
	sess.UpdatedAt = time.Now()
}

func (s *ServiceImpl) GetSession(ctx context.Context, id string) *types.Session {
	_, span := otel.Tracer("SessionService").Start(ctx, "GetSession", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()
	return s.getOrCreate(id)
}

// UpdateField upserts a named top-level field. Known mapping fields replace
// the whole map when handed a map value; anything else lands in the free-form
// Context under the given key.
func (s *ServiceImpl) UpdateField(ctx context.Context, id, key string, value any) {
	_, span := otel.Tracer("SessionService").Start(ctx, "UpdateField", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("field", key),
	))
	defer span.End()

	sess := s.getOrCreate(id)
	m, isMap := value.(map[string]any)
	switch {
	case key == "profile" && isMap:
		sess.Profile = m
	case key == "persona" && isMap:
		sess.Persona = m
	case key == "trip_details" && isMap:
		sess.TripDetails = m
	case key == "pricing" && isMap:
		sess.Pricing = m
	default:
		sess.Context[key] = value
	}
	s.touch(sess)
}

func (s *ServiceImpl) AppendMessage(ctx context.Context, id string, role types.MessageRole, content string) types.Message {
	_, span := otel.Tracer("SessionService").Start(ctx, "AppendMessage", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("message.role", string(role)),
	))
	defer span.End()

	sess := s.getOrCreate(id)
	msg := types.Message{
		ID:        fmt.Sprintf("%s-msg-%d", id, len(sess.Messages)),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	sess.Messages = append(sess.Messages, msg)
	s.touch(sess)
	return msg
}

func (s *ServiceImpl) SetProfile(ctx context.Context, id string, profile map[string]any) {
	sess := s.getOrCreate(id)
	sess.Profile = profile
	s.touch(sess)
}

func (s *ServiceImpl) GetProfile(ctx context.Context, id string) map[string]any {
	return s.getOrCreate(id).Profile
}

func (s *ServiceImpl) SetPersona(ctx context.Context, id string, persona map[string]any) {
	sess := s.getOrCreate(id)
	sess.Persona = persona
	s.touch(sess)
}

func (s *ServiceImpl) GetPersona(ctx context.Context, id string) map[string]any {
	return s.getOrCreate(id).Persona
}

func (s *ServiceImpl) SetTripDetails(ctx context.Context, id string, details map[string]any) {
	sess := s.getOrCreate(id)
	sess.TripDetails = details
	s.touch(sess)
}

func (s *ServiceImpl) GetTripDetails(ctx context.Context, id string) map[string]any {
	return s.getOrCreate(id).TripDetails
}

func (s *ServiceImpl) SetPricing(ctx context.Context, id string, pricing map[string]any) {
	sess := s.getOrCreate(id)
	sess.Pricing = pricing
	s.touch(sess)
}

func (s *ServiceImpl) GetPricing(ctx context.Context, id string) map[string]any {
	return s.getOrCreate(id).Pricing
}

// AddItinerary upserts a single keyed itinerary; siblings are untouched and
// entries are never removed.
func (s *ServiceImpl) AddItinerary(ctx context.Context, id, itineraryID string, payload any) {
	_, span := otel.Tracer("SessionService").Start(ctx, "AddItinerary", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("itinerary.id", itineraryID),
	))
	defer span.End()

	sess := s.getOrCreate(id)
	sess.Itineraries[itineraryID] = payload
	s.touch(sess)
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id, itineraryID string) (any, bool) {
	payload, ok := s.getOrCreate(id).Itineraries[itineraryID]
	return payload, ok
}

func (s *ServiceImpl) GetAllItineraries(ctx context.Context, id string) map[string]any {
	return s.getOrCreate(id).Itineraries
}

func (s *ServiceImpl) AddCustomization(ctx context.Context, id string, payload map[string]any) types.TimestampedEntry {
	sess := s.getOrCreate(id)
	entry := types.TimestampedEntry{Data: payload, AddedAt: time.Now()}
	sess.Customizations = append(sess.Customizations, entry)
	s.touch(sess)
	return entry
}

func (s *ServiceImpl) GetCustomizations(ctx context.Context, id string) []types.TimestampedEntry {
	return s.getOrCreate(id).Customizations
}

func (s *ServiceImpl) AddBooking(ctx context.Context, id string, payload map[string]any) types.TimestampedEntry {
	_, span := otel.Tracer("SessionService").Start(ctx, "AddBooking", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	sess := s.getOrCreate(id)
	entry := types.TimestampedEntry{Data: payload, AddedAt: time.Now()}
	sess.Bookings = append(sess.Bookings, entry)
	s.touch(sess)
	s.logger.InfoContext(ctx, "Booking recorded",
		slog.String("sessionID", id),
		slog.Int("totalBookings", len(sess.Bookings)),
	)
	return entry
}

func (s *ServiceImpl) GetBookings(ctx context.Context, id string) []types.TimestampedEntry {
	return s.getOrCreate(id).Bookings
}

func (s *ServiceImpl) SetContext(ctx context.Context, id, key string, value any) {
	sess := s.getOrCreate(id)
	sess.Context[key] = value
	s.touch(sess)
}

func (s *ServiceImpl) GetContext(ctx context.Context, id, key string) (any, bool) {
	value, ok := s.getOrCreate(id).Context[key]
	return value, ok
}

// ClearSession removes the session entirely; a no-op when absent. The next
// GetSession on the same identifier starts a fresh lifecycle.
func (s *ServiceImpl) ClearSession(ctx context.Context, id string) {
	_, span := otel.Tracer("SessionService").Start(ctx, "ClearSession", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	s.store.Delete(id)
	s.logger.InfoContext(ctx, "Session cleared", slog.String("sessionID", id))
}

func (s *ServiceImpl) Stats(ctx context.Context) types.SessionStats {
	return types.SessionStats{
		ActiveSessions: s.store.Len(),
		SessionIDs:     s.store.IDs(),
	}
}
