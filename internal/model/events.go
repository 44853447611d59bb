package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventStudyMoved     EventType = "study_moved"
	EventReplayStarted  EventType = "replay_started"
	EventMoveCorrect    EventType = "move_correct"
	EventMoveWrong      EventType = "move_wrong"
	EventOpponentMoved  EventType = "opponent_moved"
	EventGameComplete   EventType = "game_complete"
	EventGameReset      EventType = "game_reset"
	EventSessionClosed  EventType = "session_closed"

	// EventSnapshot is sent to a stream subscriber when it connects
	EventSnapshot EventType = "snapshot"
)

// Event is published after every state change of a session
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID SessionID `json:"session_id"`
	Payload   any       `json:"payload,omitempty"` // Usually a session.Snapshot
}
