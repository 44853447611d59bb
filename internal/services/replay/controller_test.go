package replay

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/dependencies/mocks"
	"github.com/mcoot/gomemo/internal/dependencies/random"
	"github.com/mcoot/gomemo/internal/hint"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/testutil"
)

// recorder is a Publisher that keeps every event
type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) Publish(e model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) last() model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type completion struct {
	id    model.SessionID
	stats session.CompletionStats
}

type ControllerSuite struct {
	suite.Suite
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	publisher   *recorder
	completions []completion
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.publisher = &recorder{}
	s.completions = nil
}

func stone(color model.Color, x, y, number int) model.Move {
	return model.Move{X: x, Y: y, Color: color, MoveNumber: number}
}

// alternating is B(2,2) W(6,6) B(6,2) W(2,6) on 9x9
func alternating() *model.GameRecord {
	return &model.GameRecord{
		ID:        "rec-1",
		Name:      "alternating",
		BoardSize: 9,
		Moves: []model.Move{
			stone(model.Black, 2, 2, 1),
			stone(model.White, 6, 6, 2),
			stone(model.Black, 6, 2, 3),
			stone(model.White, 2, 6, 4),
		},
	}
}

func (s *ControllerSuite) newController(record *model.GameRecord) *Controller {
	c, err := NewController("session-1", record, s.clock, s.random, s.publisher, DefaultConfig(),
		func(c *Controller, stats session.CompletionStats) {
			s.completions = append(s.completions, completion{id: c.ID(), stats: stats})
		},
		testutil.NopLogger(),
	)
	s.Require().NoError(err)
	return c
}

func (s *ControllerSuite) position(c *Controller) int {
	state, err := c.State()
	s.Require().NoError(err)
	return state.ReplayPosition
}

func (s *ControllerSuite) TestNewControllerPublishesCreated() {
	c := s.newController(alternating())

	s.Equal([]model.EventType{model.EventSessionCreated}, s.publisher.types())
	ev := s.publisher.last()
	s.Equal(model.SessionID("session-1"), ev.SessionID)
	s.Equal(s.clock.Now(), ev.Timestamp)
	snap, ok := ev.Payload.(session.Snapshot)
	s.Require().True(ok)
	s.Equal(session.PhaseStudy, snap.Phase)
	s.Equal(4, snap.TotalMoves)

	s.Equal(model.SessionID("session-1"), c.ID())
	s.Equal("alternating", c.Record().Name)
	s.Equal(s.clock.Now(), c.CreatedAt())
}

func (s *ControllerSuite) TestNewControllerRejectsInvalidRecord() {
	record := alternating()
	record.BoardSize = 0
	_, err := NewController("session-1", record, s.clock, s.random, nil, DefaultConfig(), nil, testutil.NopLogger())
	s.ErrorIs(err, model.ErrInvalidRecord)
}

func (s *ControllerSuite) TestStudyPublishesOnlyRealSteps() {
	c := s.newController(alternating())
	s.publisher.reset()

	res, err := c.StudyPrev()
	s.Require().NoError(err)
	s.True(res.AtStart)
	s.Empty(s.publisher.types())

	res, err = c.StudyNext()
	s.Require().NoError(err)
	s.Equal(1, res.Position)
	s.Equal([]model.EventType{model.EventStudyMoved}, s.publisher.types())

	snap := s.publisher.last().Payload.(session.Snapshot)
	s.Equal(1, snap.StudyPosition)
	s.Equal(1, snap.Board[2][2])
}

func (s *ControllerSuite) TestFullReplayCompletes() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.Empty))
	s.Equal(0, s.clock.PendingTimers())

	for _, m := range alternating().Moves {
		s.clock.Advance(time.Second)
		res, err := c.ValidateMove(m.X, m.Y)
		s.Require().NoError(err)
		s.True(res.Correct)
	}

	s.Require().Len(s.completions, 1)
	s.Equal(model.SessionID("session-1"), s.completions[0].id)
	s.Equal(100, s.completions[0].stats.Accuracy)
	s.Equal(int64(4000), s.completions[0].stats.TotalTimeMs)

	types := s.publisher.types()
	s.Equal(model.EventGameComplete, types[len(types)-1])
	s.Equal(model.EventMoveCorrect, types[len(types)-2])

	state, err := c.State()
	s.Require().NoError(err)
	s.Equal(session.PhaseComplete, state.Phase)
}

func (s *ControllerSuite) TestWrongMovePublishesHint() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.Empty))

	res, err := c.ValidateMove(8, 8)
	s.Require().NoError(err)
	s.False(res.Correct)
	s.Equal(model.EventMoveWrong, s.publisher.last().Type)

	snap := s.publisher.last().Payload.(session.Snapshot)
	s.Require().NotNil(snap.Hint)
	s.Equal(hint.TypeQuadrant, snap.Hint.Type)

	h, err := c.CurrentHint()
	s.Require().NoError(err)
	s.Equal(snap.Hint, h)

	attempts, err := c.WrongAttempts(0)
	s.Require().NoError(err)
	s.Equal([]model.Position{{X: 8, Y: 8}}, attempts)
}

func (s *ControllerSuite) TestErrorsDoNotPublish() {
	c := s.newController(alternating())
	s.publisher.reset()

	_, err := c.ValidateMove(2, 2)
	s.ErrorIs(err, model.ErrNotInReplay)
	_, err = c.ValidatePass()
	s.ErrorIs(err, model.ErrNotInReplay)
	s.ErrorIs(c.StartReplay(3, 1, model.Empty), model.ErrInvalidRange)

	s.Empty(s.publisher.types())
}

func (s *ControllerSuite) TestOpponentMoveAfterDelay() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.Black))
	s.Equal(0, s.clock.PendingTimers(), "black moves first, nothing to schedule")

	s.random.QueueIntn(100)
	res, err := c.ValidateMove(2, 2)
	s.Require().NoError(err)
	s.True(res.Correct)

	s.Equal(1, s.clock.PendingTimers())
	s.Equal(600*time.Millisecond, s.clock.LastDelay())

	// The user cannot play the opponent's move
	_, err = c.ValidateMove(6, 6)
	s.ErrorIs(err, model.ErrNotUserTurn)
	_, err = c.ValidatePass()
	s.ErrorIs(err, model.ErrNotUserTurn)

	s.clock.Advance(599 * time.Millisecond)
	s.Equal(1, s.position(c))

	s.clock.Advance(time.Millisecond)
	s.Equal(2, s.position(c))
	s.Equal(model.EventOpponentMoved, s.publisher.last().Type)
	s.Equal(0, s.clock.PendingTimers())

	state, err := c.State()
	s.Require().NoError(err)
	s.True(state.IsUserTurn)
	s.Equal(0, state.Stats.WrongMoveCount)
}

func (s *ControllerSuite) TestOpponentMovesFirst() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.White))
	s.Equal(1, s.clock.PendingTimers())

	s.clock.Advance(time.Second)
	s.Equal(1, s.position(c))
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ControllerSuite) TestConsecutiveOpponentMovesRearm() {
	record := &model.GameRecord{
		ID:        "rec-2",
		BoardSize: 9,
		Moves: []model.Move{
			stone(model.Black, 2, 2, 1),
			stone(model.White, 6, 6, 2),
			stone(model.White, 6, 2, 3),
			stone(model.Black, 2, 6, 4),
		},
	}
	c := s.newController(record)
	s.Require().NoError(c.StartReplay(0, 3, model.Black))

	_, err := c.ValidateMove(2, 2)
	s.Require().NoError(err)

	// Each step only reaches the timer armed by the previous opponent move
	delay := DefaultConfig().MinOpponentDelay
	s.clock.Advance(delay)
	s.Equal(2, s.position(c))
	s.Equal(1, s.clock.PendingTimers())

	s.clock.Advance(delay)
	s.Equal(3, s.position(c))
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ControllerSuite) TestOpponentCanCompleteReplay() {
	record := alternating()
	record.Moves = record.Moves[:2]
	c := s.newController(record)
	s.Require().NoError(c.StartReplay(0, 1, model.Black))

	_, err := c.ValidateMove(2, 2)
	s.Require().NoError(err)
	s.Empty(s.completions)

	s.clock.Advance(time.Second)

	s.Require().Len(s.completions, 1)
	s.Equal(2, s.completions[0].stats.ReplayedMoves)
	s.Equal(50, s.completions[0].stats.Accuracy)
	s.Equal(model.EventGameComplete, s.publisher.last().Type)
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ControllerSuite) TestResetCancelsPendingOpponent() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.White))
	s.Equal(1, s.clock.PendingTimers())

	s.Require().NoError(c.Reset())
	s.Equal(0, s.clock.PendingTimers())
	s.Equal(model.EventGameReset, s.publisher.last().Type)

	s.clock.Advance(time.Minute)
	state, err := c.State()
	s.Require().NoError(err)
	s.Equal(session.PhaseStudy, state.Phase)
	s.Equal(0, state.ReplayPosition)
}

func (s *ControllerSuite) TestRestartingReplaySupersedesTimer() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.White))
	s.Require().NoError(c.StartReplay(2, 3, model.White))

	s.Equal(1, s.clock.PendingTimers())
	s.clock.Advance(time.Second)
	s.Equal(3, s.position(c))
}

func (s *ControllerSuite) TestStaleTimerIsIgnored() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.White))

	// A callback from an earlier generation must not move the session
	c.playOpponent(c.generation - 1)
	s.Equal(0, s.position(c))
}

func (s *ControllerSuite) TestBoardAt() {
	c := s.newController(alternating())
	_, err := c.StudyNext()
	s.Require().NoError(err)

	b, err := c.BoardAt(1)
	s.Require().NoError(err)
	s.Equal(model.Black, b.At(2, 2))

	_, err = c.BoardAt(3)
	s.ErrorIs(err, model.ErrInvalidPosition)
	_, err = c.WrongAttempts(4)
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestIsValidPosition() {
	c := s.newController(alternating())

	_, err := c.IsValidPosition(2, 2)
	s.ErrorIs(err, model.ErrNotInReplay)

	s.Require().NoError(c.StartReplay(0, 3, model.Empty))
	valid, err := c.IsValidPosition(2, 2)
	s.Require().NoError(err)
	s.True(valid)

	_, err = c.ValidateMove(2, 2)
	s.Require().NoError(err)
	valid, err = c.IsValidPosition(2, 2)
	s.Require().NoError(err)
	s.False(valid, "occupied")
	valid, err = c.IsValidPosition(9, 0)
	s.Require().NoError(err)
	s.False(valid, "off board")
}

func (s *ControllerSuite) TestDifficultMovesAndStats() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.Empty))
	_, _ = c.ValidateMove(0, 0)
	_, _ = c.ValidateMove(1, 0)

	difficult, err := c.DifficultMoves(5)
	s.Require().NoError(err)
	s.Require().Len(difficult, 1)
	s.Equal(2, difficult[0].AttemptCount)

	stats, err := c.CompletionStats()
	s.Require().NoError(err)
	s.Equal(2, stats.WrongMoveCount)
}

func (s *ControllerSuite) TestClose() {
	c := s.newController(alternating())
	s.Require().NoError(c.StartReplay(0, 3, model.White))

	c.Close()
	c.Close()

	s.Equal(0, s.clock.PendingTimers())
	s.Equal(model.EventSessionClosed, s.publisher.last().Type)
	s.Nil(s.publisher.last().Payload)

	_, err := c.State()
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.StudyNext()
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.ValidateMove(2, 2)
	s.ErrorIs(err, model.ErrSessionClosed)
	s.ErrorIs(c.Reset(), model.ErrSessionClosed)
	s.ErrorIs(c.StartReplay(0, 1, model.Empty), model.ErrSessionClosed)
	_, err = c.CurrentHint()
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.BoardAt(0)
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.DifficultMoves(0)
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.IsValidPosition(0, 0)
	s.ErrorIs(err, model.ErrSessionClosed)
	_, err = c.CompletionStats()
	s.ErrorIs(err, model.ErrSessionClosed)
}

func TestControllerWithRealClock(t *testing.T) {
	cfg := Config{MinOpponentDelay: time.Millisecond, OpponentJitter: 2 * time.Millisecond}
	c, err := NewController("session-1", alternating(), clock.New(), random.New(), nil, cfg, nil, testutil.NopLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.StartReplay(0, 3, model.Black); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ValidateMove(2, 2); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		state, err := c.State()
		if err != nil {
			t.Fatal(err)
		}
		if state.ReplayPosition == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("opponent never moved, position %d", state.ReplayPosition)
		}
		time.Sleep(time.Millisecond)
	}
}
