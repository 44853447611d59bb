package model

import "time"

// RecordID identifies an imported game record. IDs are derived from the
// record's content so importing the same file twice yields the same ID.
type RecordID string

// SessionID identifies a live study/replay session
type SessionID string

// GameRecord is a parsed game ready to be studied
type GameRecord struct {
	ID          RecordID     `json:"id"`
	Name        string       `json:"name"`
	BoardSize   int          `json:"board_size"`
	Moves       []Move       `json:"moves"`
	Setup       []SetupStone `json:"setup,omitempty"`
	Komi        float64      `json:"komi,omitempty"`
	PlayerBlack string       `json:"player_black,omitempty"`
	PlayerWhite string       `json:"player_white,omitempty"`
	Result      string       `json:"result,omitempty"`
	Date        string       `json:"date,omitempty"`
	ImportedAt  time.Time    `json:"imported_at"`
}

// TotalMoves returns the number of moves in the record, passes included
func (r *GameRecord) TotalMoves() int {
	return len(r.Moves)
}

// ReplayResult is the summary of a finished replay, kept for history
type ReplayResult struct {
	ID              string    `json:"id"`
	RecordID        RecordID  `json:"record_id"`
	SessionID       SessionID `json:"session_id"`
	StartMove       int       `json:"start_move"`
	EndMove         int       `json:"end_move"`
	Side            Color     `json:"side"`
	TotalTimeMs     int64     `json:"total_time_ms"`
	AvgTimeMs       int64     `json:"avg_time_ms"`
	Accuracy        int       `json:"accuracy"`
	WrongMoveCount  int       `json:"wrong_move_count"`
	CorrectFirstTry int       `json:"correct_first_try"`
	ReplayedMoves   int       `json:"replayed_moves"`
	CompletedAt     time.Time `json:"completed_at"`
}
