package replay

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/gomemo/internal/board"
	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/dependencies/random"
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
)

// Publisher receives an event after every change to a session
type Publisher interface {
	Publish(event model.Event)
}

// CompletionFunc is called once each time a replay is completed. It runs
// with the controller locked and must not call back into it.
type CompletionFunc func(c *Controller, stats session.CompletionStats)

// Controller serializes access to one session and plays the opponent's
// moves on a timer during single-side replay
type Controller struct {
	id     model.SessionID
	record *model.GameRecord

	clock      clock.Clock
	random     random.Random
	publisher  Publisher
	cfg        Config
	logger     *slog.Logger
	onComplete CompletionFunc
	createdAt  time.Time

	mu         sync.Mutex
	sess       *session.Session
	timer      clock.Timer
	generation uint64 // bumped whenever a pending opponent move is superseded
	closed     bool
}

// NewController wraps a new session over the record's moves
func NewController(
	id model.SessionID,
	record *model.GameRecord,
	clock clock.Clock,
	random random.Random,
	publisher Publisher,
	cfg Config,
	onComplete CompletionFunc,
	logger *slog.Logger,
) (*Controller, error) {
	sess, err := session.New(record.Moves, record.BoardSize, record.Setup, clock)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}

	c := &Controller{
		id:         id,
		record:     record,
		clock:      clock,
		random:     random,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger.With(slog.String("session_id", string(id))),
		onComplete: onComplete,
		createdAt:  clock.Now(),
		sess:       sess,
	}
	c.mu.Lock()
	c.publish(model.EventSessionCreated)
	c.mu.Unlock()
	return c, nil
}

// ID returns the session ID
func (c *Controller) ID() model.SessionID {
	return c.id
}

// Record returns the game record being studied
func (c *Controller) Record() *model.GameRecord {
	return c.record
}

// CreatedAt returns when the session was created
func (c *Controller) CreatedAt() time.Time {
	return c.createdAt
}

// State returns a snapshot of the session
func (c *Controller) State() (session.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return session.Snapshot{}, model.ErrSessionClosed
	}
	return c.sess.State(), nil
}

// SnapshotEvent returns the current state wrapped as an event, for clients
// that join the event stream after the session was created
func (c *Controller) SnapshotEvent() (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return model.Event{}, model.ErrSessionClosed
	}
	return model.Event{
		Type:      model.EventSnapshot,
		Timestamp: c.clock.Now(),
		SessionID: c.id,
		Payload:   c.sess.State(),
	}, nil
}

// StudyNext steps forward through the record
func (c *Controller) StudyNext() (session.StudyResult, error) {
	return c.study((*session.Session).StudyNext)
}

// StudyPrev steps backward through the record
func (c *Controller) StudyPrev() (session.StudyResult, error) {
	return c.study((*session.Session).StudyPrev)
}

func (c *Controller) study(step func(*session.Session) (session.StudyResult, error)) (session.StudyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return session.StudyResult{}, model.ErrSessionClosed
	}

	result, err := step(c.sess)
	if err != nil {
		return result, err
	}
	if !result.AtEnd && !result.AtStart {
		c.publish(model.EventStudyMoved)
	}
	return result, nil
}

// StartReplay begins replaying moves startMove..endMove. side selects the
// color the user plays; model.Empty means both.
func (c *Controller) StartReplay(startMove, endMove int, side model.Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return model.ErrSessionClosed
	}

	if err := c.sess.StartReplay(startMove, endMove, side); err != nil {
		return err
	}
	c.cancelOpponent()

	c.logger.Info("replay started",
		slog.Int("start_move", startMove),
		slog.Int("end_move", endMove),
		slog.String("side", side.String()),
	)
	c.publish(model.EventReplayStarted)
	c.scheduleOpponent()
	return nil
}

// Reset returns the session to the start of study
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return model.ErrSessionClosed
	}

	c.cancelOpponent()
	c.sess.Reset()
	c.publish(model.EventGameReset)
	return nil
}

// ValidateMove checks the user's move at (x, y)
func (c *Controller) ValidateMove(x, y int) (session.MoveResult, error) {
	return c.validate(func(s *session.Session) (session.MoveResult, error) {
		return s.ValidateMove(x, y)
	})
}

// ValidatePass checks the user's pass
func (c *Controller) ValidatePass() (session.MoveResult, error) {
	return c.validate((*session.Session).ValidatePass)
}

func (c *Controller) validate(attempt func(*session.Session) (session.MoveResult, error)) (session.MoveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return session.MoveResult{}, model.ErrSessionClosed
	}
	if c.sess.Phase() == session.PhaseReplay && !c.sess.IsUserMove(c.sess.ReplayPosition()) {
		return session.MoveResult{}, model.ErrNotUserTurn
	}

	result, err := attempt(c.sess)
	if err != nil {
		return result, err
	}

	if result.Correct {
		c.publish(model.EventMoveCorrect)
	} else {
		c.publish(model.EventMoveWrong)
	}
	c.afterCommit(result)
	return result, nil
}

// IsValidPosition reports whether (x, y) is an empty point on the current
// replay board. Outside the replay phase it returns ErrNotInReplay.
func (c *Controller) IsValidPosition(x, y int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, model.ErrSessionClosed
	}
	if c.sess.Phase() != session.PhaseReplay {
		return false, model.ErrNotInReplay
	}
	return c.sess.IsValidPosition(x, y), nil
}

// CurrentHint returns the hint for the move at the cursor, if any
func (c *Controller) CurrentHint() (*hint.Hint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, model.ErrSessionClosed
	}
	return c.sess.CurrentHint(), nil
}

// BoardAt returns the board after the first position moves. Only positions
// already reached in study or replay are available.
func (c *Controller) BoardAt(position int) (board.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return board.State{}, model.ErrSessionClosed
	}
	b, ok := c.sess.BoardAt(position)
	if !ok {
		return board.State{}, model.ErrInvalidPosition
	}
	return b, nil
}

// WrongAttempts returns the wrong points tried for a move
func (c *Controller) WrongAttempts(moveIndex int) ([]model.Position, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, model.ErrSessionClosed
	}
	if moveIndex < 0 || moveIndex >= c.sess.TotalMoves() {
		return nil, model.ErrInvalidPosition
	}
	return c.sess.WrongAttempts(moveIndex), nil
}

// DifficultMoves returns the moves with the most wrong attempts
func (c *Controller) DifficultMoves(limit int) ([]session.DifficultMove, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, model.ErrSessionClosed
	}
	return c.sess.DifficultMoves(limit), nil
}

// CompletionStats summarizes the current or last replay
func (c *Controller) CompletionStats() (session.CompletionStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return session.CompletionStats{}, model.ErrSessionClosed
	}
	return c.sess.CompletionStats(), nil
}

// Close cancels any pending opponent move. Every later call fails with
// model.ErrSessionClosed. Closing twice is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelOpponent()
	c.closed = true
	c.publisher.Publish(model.Event{
		Type:      model.EventSessionClosed,
		Timestamp: c.clock.Now(),
		SessionID: c.id,
	})
}

// afterCommit runs the completion hook or arms the next opponent move
func (c *Controller) afterCommit(result session.MoveResult) {
	if result.GameComplete {
		stats := c.sess.CompletionStats()
		c.logger.Info("replay complete",
			slog.Int("accuracy", stats.Accuracy),
			slog.Int("wrong_moves", stats.WrongMoveCount),
			slog.Int64("total_time_ms", stats.TotalTimeMs),
		)
		c.publish(model.EventGameComplete)
		if c.onComplete != nil {
			c.onComplete(c, stats)
		}
		return
	}
	c.scheduleOpponent()
}

// scheduleOpponent arms a timer for the move at the cursor if it belongs to
// the opponent. At most one timer is pending at a time.
func (c *Controller) scheduleOpponent() {
	if c.closed || c.timer != nil || c.sess.Phase() != session.PhaseReplay {
		return
	}
	if c.sess.IsUserMove(c.sess.ReplayPosition()) {
		return
	}

	delay := c.cfg.MinOpponentDelay
	if jitter := int(c.cfg.OpponentJitter / time.Millisecond); jitter > 0 {
		delay += time.Duration(c.random.Intn(jitter)) * time.Millisecond
	}

	gen := c.generation
	c.timer = c.clock.AfterFunc(delay, func() { c.playOpponent(gen) })
	c.logger.Debug("opponent move scheduled",
		slog.Int("position", c.sess.ReplayPosition()),
		slog.Duration("delay", delay),
	)
}

// playOpponent is the timer callback. A timer from a superseded generation
// does nothing.
func (c *Controller) playOpponent(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}
	c.timer = nil

	result, err := c.sess.PlayOpponentMove()
	if err != nil {
		c.logger.Debug("opponent move skipped", slog.Any("error", err))
		return
	}
	c.publish(model.EventOpponentMoved)
	c.afterCommit(result)
}

func (c *Controller) cancelOpponent() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *Controller) publish(eventType model.EventType) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		SessionID: c.id,
		Payload:   c.sess.State(),
	})
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
