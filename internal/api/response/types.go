package response

import (
	"time"

	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
)

// RecordSummary is a game record without its move list
type RecordSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BoardSize   int       `json:"board_size"`
	TotalMoves  int       `json:"total_moves"`
	PlayerBlack string    `json:"player_black,omitempty"`
	PlayerWhite string    `json:"player_white,omitempty"`
	Result      string    `json:"result,omitempty"`
	ImportedAt  time.Time `json:"imported_at"`
}

// RecordSummaryFromModel converts a model.GameRecord to a RecordSummary
func RecordSummaryFromModel(r *model.GameRecord) RecordSummary {
	return RecordSummary{
		ID:          string(r.ID),
		Name:        r.Name,
		BoardSize:   r.BoardSize,
		TotalMoves:  r.TotalMoves(),
		PlayerBlack: r.PlayerBlack,
		PlayerWhite: r.PlayerWhite,
		Result:      r.Result,
		ImportedAt:  r.ImportedAt,
	}
}

// RecordList is the response for listing records
type RecordList struct {
	Records []RecordSummary `json:"records"`
}

// RecordListFromModel converts a slice of records
func RecordListFromModel(records []*model.GameRecord) RecordList {
	out := RecordList{Records: make([]RecordSummary, len(records))}
	for i, r := range records {
		out.Records[i] = RecordSummaryFromModel(r)
	}
	return out
}

// ResultList is the replay history of one record
type ResultList struct {
	Results []*model.ReplayResult `json:"results"`
	Best    *model.ReplayResult   `json:"best,omitempty"`
}

// Session is the response for session endpoints
type Session struct {
	ID        string           `json:"id"`
	RecordID  string           `json:"record_id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	State     session.Snapshot `json:"state"`
}

// StudyResponse is the response for study navigation
type StudyResponse struct {
	Result session.StudyResult `json:"result"`
	State  session.Snapshot    `json:"state"`
}

// MoveResponse is the response for replay attempts
type MoveResponse struct {
	Result session.MoveResult `json:"result"`
	State  session.Snapshot   `json:"state"`
}

// HintResponse is the response for the current hint. Hint is null before
// the first wrong attempt on a move.
type HintResponse struct {
	Hint     *hint.Hint `json:"hint"`
	Attempts int        `json:"attempts"`
}

// BoardResponse is a historical board position
type BoardResponse struct {
	Position  int     `json:"position"`
	BoardSize int     `json:"board_size"`
	Board     [][]int `json:"board"`
	Captures  struct {
		Black int `json:"black"`
		White int `json:"white"`
	} `json:"captures"`
}

// WrongAttemptsResponse lists the wrong points tried for one move
type WrongAttemptsResponse struct {
	MoveIndex     int              `json:"move_index"`
	WrongAttempts []model.Position `json:"wrong_attempts"`
}

// DifficultMovesResponse lists the moves the user struggled with
type DifficultMovesResponse struct {
	Moves []session.DifficultMove `json:"moves"`
}
