package types

import (
	"time"
)

// Session holds the full mutable state for one conversational identity.
// Sessions are created lazily on first access and live for the life of the
// process; there is no "session not found" state anywhere in the API.
type Session struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Messages       []Message          `json:"messages"`
	Profile        map[string]any     `json:"profile"`
	Persona        map[string]any     `json:"persona"`
	TripDetails    map[string]any     `json:"trip_details"`
	Itineraries    map[string]any     `json:"itineraries"`
	Customizations []TimestampedEntry `json:"customizations"`
	Pricing        map[string]any     `json:"pricing"`
	Bookings       []TimestampedEntry `json:"bookings"`
	Context        map[string]any     `json:"context"`
}

type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// TimestampedEntry wraps an append-only payload (customization, booking)
// with its insertion time.
type TimestampedEntry struct {
	Data    map[string]any `json:"data"`
	AddedAt time.Time      `json:"added_at"`
}

// SessionStats is a diagnostics snapshot of the live session set.
type SessionStats struct {
	ActiveSessions int      `json:"active_sessions"`
	SessionIDs     []string `json:"session_ids"`
}
