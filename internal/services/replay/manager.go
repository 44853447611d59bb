package replay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/dependencies/random"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/session"
)

// RecordSource looks up game records
type RecordSource interface {
	Get(ctx context.Context, id model.RecordID) (*model.GameRecord, error)
}

// ResultSink stores completed replays
type ResultSink interface {
	Save(ctx context.Context, c history.Completion) (*model.ReplayResult, error)
}

// Manager owns the live sessions. Sessions are kept in memory only and do
// not survive a restart.
type Manager struct {
	records   RecordSource
	results   ResultSink
	publisher Publisher
	clock     clock.Clock
	random    random.Random
	cfg       Config
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[model.SessionID]*Controller
}

// NewManager creates a new session Manager
func NewManager(
	records RecordSource,
	results ResultSink,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		records:   records,
		results:   results,
		publisher: publisher,
		clock:     clock,
		random:    random,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "replay")),
		sessions:  make(map[model.SessionID]*Controller),
	}
}

// Create starts a new session over a stored record
func (m *Manager) Create(ctx context.Context, recordID model.RecordID) (*Controller, error) {
	record, err := m.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	id := model.SessionID(uuid.NewString())
	c, err := NewController(id, record, m.clock, m.random, m.publisher, m.cfg, m.saveResult, m.logger)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = c
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("record_id", string(recordID)),
		slog.Int("active_sessions", count),
	)
	return c, nil
}

// Get returns a live session
func (m *Manager) Get(id model.SessionID) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return c, nil
}

// Close ends a session and forgets it
func (m *Manager) Close(id model.SessionID) error {
	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return model.ErrSessionNotFound
	}
	c.Close()
	m.logger.Info("session closed", slog.String("session_id", string(id)))
	return nil
}

// CloseAll ends every session; used on shutdown
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[model.SessionID]*Controller)
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
	if len(sessions) > 0 {
		m.logger.Info("sessions closed", slog.Int("count", len(sessions)))
	}
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// saveResult records a completed replay in the history
func (m *Manager) saveResult(c *Controller, stats session.CompletionStats) {
	if m.results == nil {
		return
	}
	start, end := c.sess.ReplayRange()
	_, err := m.results.Save(context.Background(), history.Completion{
		RecordID:  c.record.ID,
		SessionID: c.id,
		StartMove: start,
		EndMove:   end,
		Side:      c.sess.ReplaySide(),
		Stats:     stats,
	})
	if err != nil {
		m.logger.Error("failed to save replay result",
			slog.String("session_id", string(c.id)),
			slog.Any("error", err),
		)
	}
}
