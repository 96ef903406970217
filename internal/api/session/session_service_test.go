package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagio/voyagio-server/internal/types"
)

func setupSessionServiceTest() *ServiceImpl {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServiceImpl(NewMemoryStore(), logger)
}

func TestGetSession_LazyCreation(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	sess := service.GetSession(ctx, "user-1")
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.ID)
	assert.Empty(t, sess.Messages)
	assert.Empty(t, sess.Profile)
	assert.Empty(t, sess.Bookings)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), sess.CreatedAt, time.Second)
}

func TestGetSession_SameUnderlyingSession(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	first := service.GetSession(ctx, "user-1")
	service.AppendMessage(ctx, "user-1", types.RoleUser, "hello")
	second := service.GetSession(ctx, "user-1")

	assert.Same(t, first, second)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "hello", first.Messages[0].Content)
}

func TestAppendMessage_OrderAndIDs(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := service.AppendMessage(ctx, "user-1", types.RoleUser, fmt.Sprintf("message %d", i))
		assert.Equal(t, fmt.Sprintf("user-1-msg-%d", i), msg.ID)
	}

	sess := service.GetSession(ctx, "user-1")
	require.Len(t, sess.Messages, 5)
	for i, msg := range sess.Messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		assert.False(t, msg.Timestamp.IsZero())
	}
}

func TestUpdateField(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	t.Run("known mapping field replaces the map", func(t *testing.T) {
		service.UpdateField(ctx, "user-1", "profile", map[string]any{"budget_level": "luxury"})
		profile := service.GetProfile(ctx, "user-1")
		assert.Equal(t, "luxury", profile["budget_level"])
	})

	t.Run("unknown key lands in context", func(t *testing.T) {
		service.UpdateField(ctx, "user-1", "last_search", "hotels in Lisbon")
		value, ok := service.GetContext(ctx, "user-1", "last_search")
		require.True(t, ok)
		assert.Equal(t, "hotels in Lisbon", value)
	})

	t.Run("refreshes updated_at", func(t *testing.T) {
		sess := service.GetSession(ctx, "user-2")
		before := sess.UpdatedAt
		time.Sleep(5 * time.Millisecond)
		service.UpdateField(ctx, "user-2", "pricing", map[string]any{"total": 1200})
		assert.True(t, sess.UpdatedAt.After(before))
	})
}

func TestTypedAccessors_LastWriteWins(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	service.SetProfile(ctx, "user-1", map[string]any{"vacation_style": "relaxed"})
	service.SetProfile(ctx, "user-1", map[string]any{"vacation_style": "adventurous"})
	assert.Equal(t, "adventurous", service.GetProfile(ctx, "user-1")["vacation_style"])

	service.SetPersona(ctx, "user-1", map[string]any{"tone": "formal"})
	assert.Equal(t, "formal", service.GetPersona(ctx, "user-1")["tone"])

	service.SetTripDetails(ctx, "user-1", map[string]any{"destination": "Lisbon"})
	assert.Equal(t, "Lisbon", service.GetTripDetails(ctx, "user-1")["destination"])

	service.SetPricing(ctx, "user-1", map[string]any{"currency_total": 3400})
	assert.Equal(t, 3400, service.GetPricing(ctx, "user-1")["currency_total"])
}

func TestItineraries_KeyedUpsert(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	service.AddItinerary(ctx, "user-1", "day-1", map[string]any{"city": "Lisbon"})
	service.AddItinerary(ctx, "user-1", "day-2", map[string]any{"city": "Porto"})

	// Overwriting one entry leaves siblings untouched.
	service.AddItinerary(ctx, "user-1", "day-1", map[string]any{"city": "Sintra"})

	payload, ok := service.GetItinerary(ctx, "user-1", "day-1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"city": "Sintra"}, payload)

	all := service.GetAllItineraries(ctx, "user-1")
	assert.Len(t, all, 2)
	assert.Contains(t, all, "day-2")

	_, ok = service.GetItinerary(ctx, "user-1", "missing")
	assert.False(t, ok)
}

func TestCustomizations_AppendOnly(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	service.AddCustomization(ctx, "user-1", map[string]any{"change": "add spa day"})
	service.AddCustomization(ctx, "user-1", map[string]any{"change": "upgrade room"})

	customizations := service.GetCustomizations(ctx, "user-1")
	require.Len(t, customizations, 2)
	assert.Equal(t, "add spa day", customizations[0].Data["change"])
	assert.Equal(t, "upgrade room", customizations[1].Data["change"])
	for _, entry := range customizations {
		assert.False(t, entry.AddedAt.IsZero())
	}
}

func TestBookings_AppendOrderAndTimestamps(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	const n = 4
	for i := 0; i < n; i++ {
		service.AddBooking(ctx, "user-1", map[string]any{"ref": fmt.Sprintf("bk-%d", i)})
	}

	bookings := service.GetBookings(ctx, "user-1")
	require.Len(t, bookings, n)
	for i, entry := range bookings {
		assert.Equal(t, fmt.Sprintf("bk-%d", i), entry.Data["ref"])
		assert.False(t, entry.AddedAt.IsZero())
	}
}

func TestContext_MissingKeyIsNotAnError(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	value, ok := service.GetContext(ctx, "user-1", "never-set")
	assert.False(t, ok)
	assert.Nil(t, value)

	service.SetContext(ctx, "user-1", "stage", "planning")
	value, ok = service.GetContext(ctx, "user-1", "stage")
	require.True(t, ok)
	assert.Equal(t, "planning", value)
}

func TestClearSession_YieldsFreshSession(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	service.AppendMessage(ctx, "user-1", types.RoleUser, "hello")
	service.AddBooking(ctx, "user-1", map[string]any{"ref": "bk-1"})
	old := service.GetSession(ctx, "user-1")

	service.ClearSession(ctx, "user-1")

	fresh := service.GetSession(ctx, "user-1")
	assert.NotSame(t, old, fresh)
	assert.Empty(t, fresh.Messages)
	assert.Empty(t, fresh.Bookings)
}

func TestClearSession_AbsentIsNoOp(t *testing.T) {
	service := setupSessionServiceTest()
	assert.NotPanics(t, func() {
		service.ClearSession(context.Background(), "never-seen")
	})
}

func TestStats(t *testing.T) {
	service := setupSessionServiceTest()
	ctx := context.Background()

	assert.Equal(t, 0, service.Stats(ctx).ActiveSessions)

	service.GetSession(ctx, "user-1")
	service.GetSession(ctx, "user-2")

	stats := service.Stats(ctx)
	assert.Equal(t, 2, stats.ActiveSessions)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, stats.SessionIDs)

	service.ClearSession(ctx, "user-1")
	assert.Equal(t, 1, service.Stats(ctx).ActiveSessions)
}
