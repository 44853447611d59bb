package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gomemo/internal/dependencies/mocks"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/storage/memory"
	"github.com/mcoot/gomemo/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveRecord(s.ctx, &model.GameRecord{
		ID:        "rec-1",
		Name:      "test",
		BoardSize: 9,
		Moves:     []model.Move{{X: 2, Y: 2, Color: model.Black, MoveNumber: 1}},
	}))
}

func (s *ServiceSuite) completion(accuracy int, totalMs int64) Completion {
	return Completion{
		RecordID:  "rec-1",
		SessionID: "session-1",
		StartMove: 0,
		EndMove:   0,
		Side:      model.Empty,
		Stats: session.CompletionStats{
			TotalTimeMs:     totalMs,
			AvgTimeMs:       totalMs,
			ReplayedMoves:   1,
			Accuracy:        accuracy,
			CorrectFirstTry: accuracy / 100,
		},
	}
}

func (s *ServiceSuite) TestSave() {
	result, err := s.service.Save(s.ctx, s.completion(100, 4200))
	s.Require().NoError(err)

	s.NotEmpty(result.ID)
	s.Equal(model.RecordID("rec-1"), result.RecordID)
	s.Equal(model.SessionID("session-1"), result.SessionID)
	s.Equal(100, result.Accuracy)
	s.Equal(int64(4200), result.TotalTimeMs)
	s.Equal(s.clock.Now(), result.CompletedAt)

	results, err := s.service.List(s.ctx, "rec-1")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(result.ID, results[0].ID)
}

func (s *ServiceSuite) TestSaveUnknownRecord() {
	c := s.completion(100, 1000)
	c.RecordID = "missing"
	_, err := s.service.Save(s.ctx, c)
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *ServiceSuite) TestListUnknownRecord() {
	_, err := s.service.List(s.ctx, "missing")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *ServiceSuite) TestListMostRecentFirst() {
	first, err := s.service.Save(s.ctx, s.completion(50, 1000))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	second, err := s.service.Save(s.ctx, s.completion(80, 1000))
	s.Require().NoError(err)

	results, err := s.service.List(s.ctx, "rec-1")
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(second.ID, results[0].ID)
	s.Equal(first.ID, results[1].ID)
}

func (s *ServiceSuite) TestBestNone() {
	best, err := s.service.Best(s.ctx, "rec-1")
	s.Require().NoError(err)
	s.Nil(best)
}

func (s *ServiceSuite) TestBestByAccuracyThenTime() {
	_, err := s.service.Save(s.ctx, s.completion(80, 9000))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	fast, err := s.service.Save(s.ctx, s.completion(90, 3000))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.Save(s.ctx, s.completion(90, 5000))
	s.Require().NoError(err)

	best, err := s.service.Best(s.ctx, "rec-1")
	s.Require().NoError(err)
	s.Require().NotNil(best)
	s.Equal(fast.ID, best.ID)
}
