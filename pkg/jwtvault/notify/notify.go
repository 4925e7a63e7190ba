// Package notify records rotation events on an append-only surface.
// Delivery is best-effort: a failed notification never fails a rotation.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Event is one rotation notification.
type Event struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	Event          string `json:"event"`
	Message        string `json:"message"`
	ActionRequired string `json:"action_required"`
	ExpiresAt      string `json:"expires_at"`
	Location       string `json:"location"`
}

// Sink is the alerting surface for rotation events.
type Sink interface {
	RotationEvent(ev Event) error
}

// NewRotationEvent builds the standard rotation notification. The token
// value itself is never part of an event.
func NewRotationEvent(expiresAt time.Time, recordUID string) Event {
	return Event{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Event:          "jwt_rotated",
		Message:        "A new API access token has been generated and published to the vault",
		ActionRequired: "Run 'jwtvault sync' to install the latest token",
		ExpiresAt:      expiresAt.UTC().Format(time.RFC3339),
		Location:       "vault record " + recordUID,
	}
}

// LogSink appends events as JSON lines to a local log file.
type LogSink struct {
	Path string
}

// RotationEvent appends one event line. The write is a single O_APPEND
// write, so concurrent appenders do not interleave within a line.
func (s LogSink) RotationEvent(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open notification log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}
