package request

// ImportRecordRequest is the request body for importing a game record
type ImportRecordRequest struct {
	Name string `json:"name,omitempty"`
	SGF  string `json:"sgf"`
}

// CreateSessionRequest is the request body for opening a session
type CreateSessionRequest struct {
	RecordID string `json:"record_id"`
}

// StartReplayRequest is the request body for starting a replay.
// EndMove defaults to the last move and Side to both colors.
type StartReplayRequest struct {
	StartMove int    `json:"start_move"`
	EndMove   *int   `json:"end_move,omitempty"`
	Side      string `json:"side,omitempty"`
}

// MoveRequest is the request body for a replay attempt
type MoveRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}
