package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/gomemo/internal/model"
)

// Broadcaster publishes session events to SSE clients as JSON
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends the event to everyone watching its session. A session_closed
// event also shuts the session's hub down once it has been delivered.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.SessionID)
	if hub == nil {
		return
	}

	data, err := FormatEvent(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("session_id", string(event.SessionID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(data)

	if event.Type == model.EventSessionClosed {
		b.hubManager.RemoveHub(event.SessionID)
	}
}

// FormatEvent encodes an event as an SSE message named after its type
func FormatEvent(event model.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(string(event.Type), string(data)), nil
}
