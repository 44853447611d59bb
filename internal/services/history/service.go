package history

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/storage"
)

// Service keeps the results of completed replays
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new history Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "history")),
	}
}

// Completion describes a finished replay
type Completion struct {
	RecordID  model.RecordID
	SessionID model.SessionID
	StartMove int
	EndMove   int
	Side      model.Color
	Stats     session.CompletionStats
}

// Save stores the result of a completed replay
func (s *Service) Save(ctx context.Context, c Completion) (*model.ReplayResult, error) {
	result := &model.ReplayResult{
		ID:              uuid.NewString(),
		RecordID:        c.RecordID,
		SessionID:       c.SessionID,
		StartMove:       c.StartMove,
		EndMove:         c.EndMove,
		Side:            c.Side,
		TotalTimeMs:     c.Stats.TotalTimeMs,
		AvgTimeMs:       c.Stats.AvgTimeMs,
		Accuracy:        c.Stats.Accuracy,
		WrongMoveCount:  c.Stats.WrongMoveCount,
		CorrectFirstTry: c.Stats.CorrectFirstTry,
		ReplayedMoves:   c.Stats.ReplayedMoves,
		CompletedAt:     s.clock.Now(),
	}

	if err := s.storage.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("replay result saved",
		slog.String("record_id", string(c.RecordID)),
		slog.String("session_id", string(c.SessionID)),
		slog.Int("accuracy", result.Accuracy),
		slog.Int64("total_time_ms", result.TotalTimeMs),
	)
	return result, nil
}

// List returns the record's results, most recent first
func (s *Service) List(ctx context.Context, recordID model.RecordID) ([]*model.ReplayResult, error) {
	exists, err := s.storage.RecordExists(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrRecordNotFound
	}
	return s.storage.ListResults(ctx, recordID)
}

// Best returns the record's most accurate result, the faster one winning a
// tie. It returns nil when the record has never been completed.
func (s *Service) Best(ctx context.Context, recordID model.RecordID) (*model.ReplayResult, error) {
	results, err := s.List(ctx, recordID)
	if err != nil {
		return nil, err
	}

	var best *model.ReplayResult
	for _, r := range results {
		if best == nil ||
			r.Accuracy > best.Accuracy ||
			(r.Accuracy == best.Accuracy && r.TotalTimeMs < best.TotalTimeMs) {
			best = r
		}
	}
	return best, nil
}
