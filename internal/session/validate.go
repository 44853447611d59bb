package session

import (
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
)

// MoveResult reports the outcome of a replay attempt or opponent move
type MoveResult struct {
	Correct      bool        `json:"correct"`
	GameComplete bool        `json:"game_complete,omitempty"`
	ExpectedPass bool        `json:"expected_pass,omitempty"`
	Move         *model.Move `json:"move,omitempty"` // The committed move
	NextPosition int         `json:"next_position"`
	Hint         *hint.Hint  `json:"hint,omitempty"`
	Attempts     int         `json:"attempts,omitempty"` // Wrong attempts on the current move
}

// ValidateMove checks a click at (x, y) against the next scripted move.
// A match commits the move and advances; anything else leaves the cursor
// in place and escalates the hint.
func (s *Session) ValidateMove(x, y int) (MoveResult, error) {
	if err := s.checkReplayable(); err != nil {
		return MoveResult{}, err
	}

	target := s.moves[s.replayPosition]
	if !target.IsPass && target.X == x && target.Y == y {
		return s.acceptUserMove(target), nil
	}

	if target.IsPass {
		// Clicking a point when a pass was expected is not a targeting
		// mistake, so there is nothing to narrow down
		return MoveResult{
			ExpectedPass: true,
			NextPosition: s.replayPosition,
			Hint:         s.CurrentHint(),
			Attempts:     s.wrongAttemptsCurrentMove,
		}, nil
	}

	s.recordWrongAttempt(target, model.Position{X: x, Y: y})
	return s.rejectMove(target), nil
}

// ValidatePass checks a claimed pass against the next scripted move.
// Passing when a stone was expected escalates the hint like a wrong click
// but has no point to record in the wrong-attempt ledger.
func (s *Session) ValidatePass() (MoveResult, error) {
	if err := s.checkReplayable(); err != nil {
		return MoveResult{}, err
	}

	target := s.moves[s.replayPosition]
	if target.IsPass {
		return s.acceptUserMove(target), nil
	}

	return s.rejectMove(target), nil
}

// IsUserMove returns true if the move at position must be supplied by the
// user rather than played automatically
func (s *Session) IsUserMove(position int) bool {
	if s.replaySide == model.Empty || position < 0 || position >= len(s.moves) {
		return true
	}
	return s.moves[position].Color == s.replaySide
}

// PlayOpponentMove commits the scripted move at the cursor on behalf of the
// side the user is not playing. Opponent moves are not scored.
func (s *Session) PlayOpponentMove() (MoveResult, error) {
	if s.phase != PhaseReplay {
		return MoveResult{}, model.ErrNotInReplay
	}
	if s.replayPosition > s.replayEndMove || s.replayPosition >= len(s.moves) {
		return MoveResult{}, model.ErrReplayExhausted
	}
	if s.IsUserMove(s.replayPosition) {
		return MoveResult{}, model.ErrNotOpponentTurn
	}

	return s.commit(s.moves[s.replayPosition]), nil
}

// CurrentHint returns the hint for the current move, or nil if the user
// has not yet erred on it
func (s *Session) CurrentHint() *hint.Hint {
	if s.phase != PhaseReplay || s.wrongAttemptsCurrentMove == 0 || s.hintRegion == nil {
		return nil
	}
	if s.exactHint {
		return hint.NewExactHint(s.moves[s.replayPosition].Position())
	}
	return hint.NewRegionHint(*s.hintRegion)
}

// WrongAttemptsCurrentMove returns the number of wrong attempts on the move at the cursor
func (s *Session) WrongAttemptsCurrentMove() int {
	return s.wrongAttemptsCurrentMove
}

func (s *Session) checkReplayable() error {
	if s.phase != PhaseReplay {
		return model.ErrNotInReplay
	}
	if s.replayPosition >= len(s.moves) {
		return model.ErrReplayExhausted
	}
	return nil
}

func (s *Session) acceptUserMove(target model.Move) MoveResult {
	if s.wrongAttemptsCurrentMove == 0 {
		s.stats.CorrectFirstTry++
	}
	if s.stats.StartTime != nil {
		elapsed := s.clock.Now().Sub(*s.stats.StartTime).Milliseconds()
		s.stats.MoveTimes = append(s.stats.MoveTimes, elapsed)
	}
	return s.commit(target)
}

// commit plays target onto the board at the cursor and advances
func (s *Session) commit(target model.Move) MoveResult {
	next := s.replayPosition + 1
	s.ensureHistory(next)
	s.studyPosition = next
	s.replayPosition = next
	s.clearMoveState()

	result := MoveResult{Correct: true, Move: &target, NextPosition: next}
	if s.replayPosition > s.replayEndMove {
		s.phase = PhaseComplete
		result.GameComplete = true
	}
	return result
}

// rejectMove counts a wrong attempt at target and escalates the hint:
// board quadrant first, then halves of the current region while both of
// its sides exceed hint.ExactThreshold, then the exact point
func (s *Session) rejectMove(target model.Move) MoveResult {
	s.wrongAttemptsCurrentMove++
	s.stats.WrongMoveCount++

	pos := target.Position()
	switch {
	case s.hintRegion == nil:
		r := hint.Quadrant(s.boardSize, pos)
		s.hintRegion = &r
		s.stats.QuadrantHintsUsed++
	case !s.exactHint && s.hintRegion.CanBisect():
		r := hint.Bisect(*s.hintRegion, pos)
		s.hintRegion = &r
		s.stats.SubdivisionHintsUsed++
	default:
		s.exactHint = true
		s.stats.ExactHintsUsed++
	}

	return MoveResult{
		NextPosition: s.replayPosition,
		Hint:         s.CurrentHint(),
		Attempts:     s.wrongAttemptsCurrentMove,
	}
}

func (s *Session) recordWrongAttempt(target model.Move, at model.Position) {
	rec, ok := s.wrongAttemptsByMove[s.replayPosition]
	if !ok {
		rec = &WrongAttemptRecord{
			MoveIndex:       s.replayPosition,
			CorrectPosition: target.Position(),
		}
		s.wrongAttemptsByMove[s.replayPosition] = rec
	}
	rec.WrongAttempts = append(rec.WrongAttempts, at)
}
