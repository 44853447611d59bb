// Package session implements the study/replay state machine for a single
// game record: stepping through the recorded moves, validating the user's
// attempts to reproduce them, escalating hints, and aggregating statistics.
//
// A Session is owned by a single caller and is not safe for concurrent use.
// Replay operations never panic on misuse; they return one of the
// recoverable model errors and leave the session unchanged.
package session

import (
	"fmt"
	"time"

	"github.com/mcoot/gomemo/internal/board"
	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
)

// MaxBoardSize is the largest board an SGF coordinate can address
const MaxBoardSize = 52

// Phase is the current stage of a session
type Phase string

const (
	PhaseStudy    Phase = "study"
	PhaseReplay   Phase = "replay"
	PhaseComplete Phase = "complete"
)

// Stats are the counters collected while replaying
type Stats struct {
	WrongMoveCount       int        `json:"wrong_move_count"`
	CorrectFirstTry      int        `json:"correct_first_try"`
	QuadrantHintsUsed    int        `json:"quadrant_hints_used"`
	SubdivisionHintsUsed int        `json:"subdivision_hints_used"`
	ExactHintsUsed       int        `json:"exact_hints_used"`
	StartTime            *time.Time `json:"start_time,omitempty"`
	MoveTimes            []int64    `json:"move_times"` // Elapsed ms since StartTime at each correct move
}

func (s Stats) clone() Stats {
	out := s
	if s.StartTime != nil {
		t := *s.StartTime
		out.StartTime = &t
	}
	out.MoveTimes = append([]int64{}, s.MoveTimes...)
	return out
}

// WrongAttemptRecord lists the wrong points tried for one move
type WrongAttemptRecord struct {
	MoveIndex       int              `json:"move_index"`
	WrongAttempts   []model.Position `json:"wrong_attempts"`
	CorrectPosition model.Position   `json:"correct_position"`
}

// AttemptCount returns the number of wrong attempts recorded
func (r *WrongAttemptRecord) AttemptCount() int {
	return len(r.WrongAttempts)
}

// Session is the study/replay aggregate for one game record
type Session struct {
	moves     []model.Move
	setup     []model.SetupStone
	boardSize int
	clock     clock.Clock

	phase           Phase
	studyPosition   int
	replayPosition  int
	replayStartMove int
	replayEndMove   int
	replaySide      model.Color

	// history[i] is the board after the first i moves; it is only ever
	// appended to, so rewinding and replaying reuse cached snapshots
	history []board.State

	wrongAttemptsCurrentMove int
	hintRegion               *hint.Region
	exactHint                bool
	wrongAttemptsByMove      map[int]*WrongAttemptRecord

	stats Stats
}

// New creates a session for the given move script.
// It returns model.ErrInvalidRecord if the script is structurally unusable.
func New(moves []model.Move, boardSize int, setup []model.SetupStone, clk clock.Clock) (*Session, error) {
	if err := validateScript(moves, boardSize, setup); err != nil {
		return nil, err
	}

	s := &Session{
		moves:     append([]model.Move{}, moves...),
		setup:     append([]model.SetupStone{}, setup...),
		boardSize: boardSize,
		clock:     clk,
		history:   []board.State{board.Empty(boardSize).WithSetup(setup)},
	}
	s.Reset()
	return s, nil
}

func validateScript(moves []model.Move, boardSize int, setup []model.SetupStone) error {
	if moves == nil {
		return fmt.Errorf("%w: moves must be a sequence", model.ErrInvalidRecord)
	}
	if boardSize < 1 || boardSize > MaxBoardSize {
		return fmt.Errorf("%w: board size %d out of range", model.ErrInvalidRecord, boardSize)
	}
	onBoard := func(x, y int) bool {
		return x >= 0 && x < boardSize && y >= 0 && y < boardSize
	}
	for i, m := range moves {
		if !m.Color.IsStone() {
			return fmt.Errorf("%w: move %d has no color", model.ErrInvalidRecord, i)
		}
		if !m.IsPass && !onBoard(m.X, m.Y) {
			return fmt.Errorf("%w: move %d at (%d,%d) is off the board", model.ErrInvalidRecord, i, m.X, m.Y)
		}
	}
	for i, st := range setup {
		if !st.Color.IsStone() || !onBoard(st.X, st.Y) {
			return fmt.Errorf("%w: setup stone %d is invalid", model.ErrInvalidRecord, i)
		}
	}
	return nil
}

// Moves returns a copy of the move script
func (s *Session) Moves() []model.Move {
	return append([]model.Move{}, s.moves...)
}

// TotalMoves returns the length of the move script
func (s *Session) TotalMoves() int {
	return len(s.moves)
}

// BoardSize returns the board dimension
func (s *Session) BoardSize() int {
	return s.boardSize
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// StudyPosition returns the number of moves currently shown on the board
func (s *Session) StudyPosition() int {
	return s.studyPosition
}

// ReplayPosition returns the index of the move the user must reproduce next
func (s *Session) ReplayPosition() int {
	return s.replayPosition
}

// ReplayRange returns the first and last move index of the replay
func (s *Session) ReplayRange() (start, end int) {
	return s.replayStartMove, s.replayEndMove
}

// ReplaySide returns the color the user plays, or model.Empty for both
func (s *Session) ReplaySide() model.Color {
	return s.replaySide
}

// Stats returns a copy of the current statistics
func (s *Session) Stats() Stats {
	return s.stats.clone()
}

// CurrentBoard returns the board at the current study cursor
func (s *Session) CurrentBoard() board.State {
	return s.history[s.studyPosition]
}

// BoardAt returns the board after the first position moves. Only positions
// that have already been reached are available.
func (s *Session) BoardAt(position int) (board.State, bool) {
	if position < 0 || position >= len(s.history) {
		return board.State{}, false
	}
	return s.history[position], true
}

// LastMove returns the most recent move on the board, or nil at the start
func (s *Session) LastMove() *model.Move {
	if s.studyPosition == 0 {
		return nil
	}
	m := s.moves[s.studyPosition-1]
	return &m
}

// CurrentTurn returns the color expected to play at the study cursor
func (s *Session) CurrentTurn() model.Color {
	switch {
	case s.studyPosition < len(s.moves):
		return s.moves[s.studyPosition].Color
	case len(s.moves) > 0:
		return s.moves[len(s.moves)-1].Color.Opposite()
	case len(s.setup) > 0:
		return model.White
	default:
		return model.Black
	}
}

// IsValidPosition returns true while replaying if (x, y) is an empty point
func (s *Session) IsValidPosition(x, y int) bool {
	return s.phase == PhaseReplay && s.CurrentBoard().IsEmpty(x, y)
}

// ensureHistory extends the board history so that history[position] exists
func (s *Session) ensureHistory(position int) {
	for len(s.history) <= position {
		i := len(s.history) - 1
		s.history = append(s.history, apply(s.history[i], s.moves[i]))
	}
}

func apply(b board.State, m model.Move) board.State {
	if m.IsPass {
		return b
	}
	return b.Place(m.Color, m.X, m.Y)
}
