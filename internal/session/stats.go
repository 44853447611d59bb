package session

import (
	"cmp"
	"math"
	"slices"

	"github.com/mcoot/gomemo/internal/model"
)

// DifficultMove is a move the user got wrong at least once
type DifficultMove struct {
	MoveIndex       int              `json:"move_index"`
	Move            model.Move       `json:"move"`
	WrongAttempts   []model.Position `json:"wrong_attempts"`
	CorrectPosition model.Position   `json:"correct_position"`
	AttemptCount    int              `json:"attempt_count"`
}

// CompletionStats summarizes a replay
type CompletionStats struct {
	TotalTimeMs          int64 `json:"total_time_ms"`
	AvgTimeMs            int64 `json:"avg_time_ms"`
	ReplayedMoves        int   `json:"replayed_moves"`
	Accuracy             int   `json:"accuracy"` // Percentage of moves right on the first try
	CorrectFirstTry      int   `json:"correct_first_try"`
	WrongMoveCount       int   `json:"wrong_move_count"`
	QuadrantHintsUsed    int   `json:"quadrant_hints_used"`
	SubdivisionHintsUsed int   `json:"subdivision_hints_used"`
	ExactHintsUsed       int   `json:"exact_hints_used"`
}

// WrongAttempts returns the wrong points tried for a move, oldest first
func (s *Session) WrongAttempts(moveIndex int) []model.Position {
	rec, ok := s.wrongAttemptsByMove[moveIndex]
	if !ok {
		return []model.Position{}
	}
	return append([]model.Position{}, rec.WrongAttempts...)
}

// DifficultMoves returns up to limit moves with wrong attempts, most
// attempts first and ties in move order. A limit of zero or less returns none.
func (s *Session) DifficultMoves(limit int) []DifficultMove {
	if limit <= 0 {
		return []DifficultMove{}
	}

	out := make([]DifficultMove, 0, len(s.wrongAttemptsByMove))
	for idx, rec := range s.wrongAttemptsByMove {
		if rec.AttemptCount() == 0 {
			continue
		}
		out = append(out, DifficultMove{
			MoveIndex:       idx,
			Move:            s.moves[idx],
			WrongAttempts:   append([]model.Position{}, rec.WrongAttempts...),
			CorrectPosition: rec.CorrectPosition,
			AttemptCount:    rec.AttemptCount(),
		})
	}

	slices.SortFunc(out, func(a, b DifficultMove) int {
		if c := cmp.Compare(b.AttemptCount, a.AttemptCount); c != 0 {
			return c
		}
		return cmp.Compare(a.MoveIndex, b.MoveIndex)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CompletionStats computes timing and accuracy for the current replay range
func (s *Session) CompletionStats() CompletionStats {
	var total int64
	if s.stats.StartTime != nil {
		total = s.clock.Now().Sub(*s.stats.StartTime).Milliseconds()
	}

	replayed := s.replayEndMove - s.replayStartMove + 1
	cs := CompletionStats{
		TotalTimeMs:          total,
		ReplayedMoves:        replayed,
		CorrectFirstTry:      s.stats.CorrectFirstTry,
		WrongMoveCount:       s.stats.WrongMoveCount,
		QuadrantHintsUsed:    s.stats.QuadrantHintsUsed,
		SubdivisionHintsUsed: s.stats.SubdivisionHintsUsed,
		ExactHintsUsed:       s.stats.ExactHintsUsed,
	}
	if replayed <= 0 {
		cs.ReplayedMoves = 0
		return cs
	}

	cs.AvgTimeMs = total / int64(replayed)
	accuracy := int(math.Round(100 * float64(s.stats.CorrectFirstTry) / float64(replayed)))
	cs.Accuracy = min(max(accuracy, 0), 100)
	return cs
}
