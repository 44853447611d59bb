package session

import (
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
)

// Snapshot is an immutable view of a session for rendering. It shares no
// memory with the session, so it can be handed to other goroutines.
type Snapshot struct {
	Phase           Phase       `json:"phase"`
	StudyPosition   int         `json:"study_position"`
	ReplayPosition  int         `json:"replay_position"`
	ReplayStartMove int         `json:"replay_start_move"`
	ReplayEndMove   int         `json:"replay_end_move"`
	ReplaySide      model.Color `json:"replay_side"`
	TotalMoves      int         `json:"total_moves"`
	BoardSize       int         `json:"board_size"`
	Board           [][]int     `json:"board"`
	CurrentTurn     model.Color `json:"current_turn"`
	IsUserTurn      bool        `json:"is_user_turn"`
	LastMove        *model.Move `json:"last_move,omitempty"`
	Hint            *hint.Hint  `json:"hint,omitempty"`
	Attempts        int         `json:"attempts"` // Wrong attempts on the move at the replay cursor
	Stats           Stats       `json:"stats"`
}

// State returns a snapshot of the session
func (s *Session) State() Snapshot {
	return Snapshot{
		Phase:           s.phase,
		StudyPosition:   s.studyPosition,
		ReplayPosition:  s.replayPosition,
		ReplayStartMove: s.replayStartMove,
		ReplayEndMove:   s.replayEndMove,
		ReplaySide:      s.replaySide,
		TotalMoves:      len(s.moves),
		BoardSize:       s.boardSize,
		Board:           s.CurrentBoard().Grid(),
		CurrentTurn:     s.CurrentTurn(),
		IsUserTurn:      s.phase == PhaseReplay && s.IsUserMove(s.replayPosition),
		LastMove:        s.LastMove(),
		Hint:            s.CurrentHint(),
		Attempts:        s.wrongAttemptsCurrentMove,
		Stats:           s.stats.clone(),
	}
}
