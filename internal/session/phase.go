package session

import "github.com/mcoot/gomemo/internal/model"

// StudyResult is returned by the study navigation operations
type StudyResult struct {
	Move     *model.Move `json:"move,omitempty"` // The move stepped over
	Position int         `json:"position"`
	AtEnd    bool        `json:"at_end,omitempty"`
	AtStart  bool        `json:"at_start,omitempty"`
}

// StudyNext shows the next move of the script.
// Only available in the study phase.
func (s *Session) StudyNext() (StudyResult, error) {
	if s.phase != PhaseStudy {
		return StudyResult{Position: s.studyPosition}, model.ErrNotInStudy
	}
	if s.studyPosition == len(s.moves) {
		return StudyResult{Position: s.studyPosition, AtEnd: true}, nil
	}

	move := s.moves[s.studyPosition]
	s.ensureHistory(s.studyPosition + 1)
	s.studyPosition++

	return StudyResult{Move: &move, Position: s.studyPosition}, nil
}

// StudyPrev steps back one move. The board history is kept so stepping
// forward again reuses the cached position.
func (s *Session) StudyPrev() (StudyResult, error) {
	if s.phase != PhaseStudy {
		return StudyResult{Position: s.studyPosition}, model.ErrNotInStudy
	}
	if s.studyPosition == 0 {
		return StudyResult{Position: 0, AtStart: true}, nil
	}

	s.studyPosition--
	move := s.moves[s.studyPosition]
	return StudyResult{Move: &move, Position: s.studyPosition}, nil
}

// StartReplay begins replaying moves startMove..endMove (inclusive).
// side restricts the user to one color; model.Empty means both colors.
func (s *Session) StartReplay(startMove, endMove int, side model.Color) error {
	if startMove < 0 || endMove < startMove || endMove >= len(s.moves) {
		return model.ErrInvalidRange
	}
	if side != model.Empty && !side.IsStone() {
		return model.ErrInvalidColor
	}

	s.phase = PhaseReplay
	s.replayStartMove = startMove
	s.replayEndMove = endMove
	s.replaySide = side
	s.replayPosition = startMove
	s.ensureHistory(startMove)
	s.studyPosition = startMove

	s.clearMoveState()
	s.wrongAttemptsByMove = make(map[int]*WrongAttemptRecord)

	now := s.clock.Now()
	s.stats = Stats{StartTime: &now, MoveTimes: []int64{}}
	return nil
}

// Reset returns to the study phase at the first move and clears all
// replay state. The move script and cached board history are kept.
func (s *Session) Reset() {
	s.phase = PhaseStudy
	s.studyPosition = 0
	s.replayPosition = 0
	s.replayStartMove = 0
	s.replayEndMove = len(s.moves) - 1
	s.replaySide = model.Empty

	s.clearMoveState()
	s.wrongAttemptsByMove = make(map[int]*WrongAttemptRecord)
	s.stats = Stats{MoveTimes: []int64{}}
}

func (s *Session) clearMoveState() {
	s.wrongAttemptsCurrentMove = 0
	s.hintRegion = nil
	s.exactHint = false
}
