package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of authentication event being recorded
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventTokenRefreshed EventType = "token_refreshed"
	EventLoggedOut      EventType = "logged_out"
)

// Event is a single authentication audit record. ID and OccurredAt may
// be left zero; recorders stamp them before publishing.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	Username   string    `json:"username"`
	UserID     string    `json:"userId,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ToJSON serializes the event for transport
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Recorder is the contract for persisting authentication audit events.
// Recording is best-effort; callers must not fail the request on error.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// NopRecorder discards all events. Used when auditing is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, event Event) error { return nil }
