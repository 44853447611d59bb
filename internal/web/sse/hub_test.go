package sse

import (
	"testing"
	"time"

	"github.com/mcoot/gomemo/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "move_correct",
			data:      "{\n  \"x\": 3\n}",
			expected:  "event: move_correct\ndata: {\ndata:   \"x\": 3\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "blank line kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

// waitForClients polls until the hub's event loop has processed registrations
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1:1")
	if !hub.Register(client) {
		t.Fatal("Register() = false on a running hub")
	}
	waitForClients(t, hub, 1)

	hub.Broadcast(formatSSEMessage("test-event", "test data"))

	if msg := receive(t, client); msg != "event: test-event\ndata: test data\n\n" {
		t.Errorf("client received %q", msg)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1:1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("client channel still open after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "127.0.0.1:1"),
		NewClient(hub, "127.0.0.1:2"),
		NewClient(hub, "127.0.0.1:3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.Broadcast(formatSSEMessage("update", "data"))

	for i, c := range clients {
		if msg := receive(t, c); msg != "event: update\ndata: data\n\n" {
			t.Errorf("client %d received %q", i+1, msg)
		}
	}
}

func TestHub_CloseDeliversQueuedMessages(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "127.0.0.1:1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Broadcast(formatSSEMessage("session_closed", "bye"))
	hub.Close()
	hub.Close() // idempotent

	if msg := receive(t, client); msg != "event: session_closed\ndata: bye\n\n" {
		t.Errorf("client received %q", msg)
	}
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("unexpected extra message")
		}
	case <-time.After(time.Second):
		t.Error("client channel not closed after hub close")
	}
}

func TestHub_RegisterAfterStop(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	<-hub.stopped

	if hub.Register(NewClient(hub, "127.0.0.1:1")) {
		t.Error("Register() = true on a stopped hub")
	}
	hub.Unregister(NewClient(hub, "127.0.0.1:1")) // must not block
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	hub1 := manager.GetOrCreateHub("session-1")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}
	if hub2 := manager.GetOrCreateHub("session-1"); hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same session")
	}
	if hub3 := manager.GetOrCreateHub("session-2"); hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different session")
	}
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	if hub := manager.GetHub("missing"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("session-1")
	if got := manager.GetHub("session-1"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("session-1")
	manager.RemoveHub("session-1")

	if manager.GetHub("session-1") != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("missing")
}
