package sse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/testutil"
)

func testEvent(typ model.EventType) model.Event {
	return model.Event{
		Type:      typ,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		SessionID: "session-1",
		Payload:   map[string]int{"replay_position": 4},
	}
}

func TestFormatEvent(t *testing.T) {
	msg, err := FormatEvent(testEvent(model.EventMoveCorrect))
	require.NoError(t, err)

	text := string(msg)
	require.True(t, strings.HasPrefix(text, "event: move_correct\ndata: "))
	require.True(t, strings.HasSuffix(text, "\n\n"))

	var decoded map[string]any
	payload := strings.TrimSuffix(strings.TrimPrefix(text, "event: move_correct\ndata: "), "\n\n")
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "move_correct", decoded["type"])
	assert.Equal(t, "session-1", decoded["session_id"])
	assert.Equal(t, map[string]any{"replay_position": float64(4)}, decoded["payload"])
}

func TestBroadcaster_Publish(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("session-1")
	client := NewClient(hub, "127.0.0.1:1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.Publish(testEvent(model.EventMoveWrong))

	msg := receive(t, client)
	assert.Contains(t, msg, "event: move_wrong")
	assert.Contains(t, msg, `"replay_position":4`)
}

func TestBroadcaster_SessionClosedRemovesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("session-1")
	client := NewClient(hub, "127.0.0.1:1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.Publish(testEvent(model.EventSessionClosed))

	assert.Contains(t, receive(t, client), "event: session_closed")
	assert.Nil(t, manager.GetHub("session-1"))
}

func TestBroadcaster_NoHubDoesNotPanic(t *testing.T) {
	broadcaster := NewBroadcaster(NewHubManager(testutil.NopLogger()), testutil.NopLogger())
	broadcaster.Publish(testEvent(model.EventGameComplete))
}

func TestServeSSE(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	hub := manager.GetOrCreateHub("session-1")

	initial, err := FormatEvent(testEvent(model.EventSessionCreated))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, initial)
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	waitForClients(t, hub, 1)
	broadcaster.Publish(testEvent(model.EventSessionClosed))

	// The stream ends once the hub closes, so the whole body can be read
	body := new(strings.Builder)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		body.Write(buf[:n])
		if err != nil {
			break
		}
	}

	text := body.String()
	assert.Contains(t, text, "event: connected")
	assert.Contains(t, text, "event: session_created")
	assert.Contains(t, text, "event: session_closed")
	assert.Less(t, strings.Index(text, "session_created"), strings.Index(text, "session_closed"))
}
