// Package storagetest holds the behavior every storage backend must share.
// Backend packages embed Suite and set Storage in their SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/storage"
)

// Suite is the storage contract test suite
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Record returns a small valid record imported at baseTime+offset
func Record(id model.RecordID, offset time.Duration) *model.GameRecord {
	return &model.GameRecord{
		ID:        id,
		Name:      "game " + string(id),
		BoardSize: 9,
		Moves: []model.Move{
			{X: 2, Y: 2, Color: model.Black, MoveNumber: 1},
			{X: 6, Y: 6, Color: model.White, MoveNumber: 2},
			{Color: model.Black, MoveNumber: 3, IsPass: true},
		},
		Setup:       []model.SetupStone{{X: 4, Y: 4, Color: model.Black}},
		Komi:        6.5,
		PlayerBlack: "Black",
		PlayerWhite: "White",
		ImportedAt:  baseTime.Add(offset),
	}
}

// Result returns a replay result for the record completed at baseTime+offset
func Result(id string, recordID model.RecordID, accuracy int, offset time.Duration) *model.ReplayResult {
	return &model.ReplayResult{
		ID:             id,
		RecordID:       recordID,
		SessionID:      "session-1",
		StartMove:      0,
		EndMove:        2,
		Side:           model.Black,
		TotalTimeMs:    12000,
		AvgTimeMs:      4000,
		Accuracy:       accuracy,
		WrongMoveCount: 1,
		ReplayedMoves:  3,
		CompletedAt:    baseTime.Add(offset),
	}
}

func (s *Suite) TestSaveAndGetRecord() {
	record := Record("rec-1", 0)
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, record))

	got, err := s.Storage.GetRecord(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Equal(record.Name, got.Name)
	s.Equal(record.BoardSize, got.BoardSize)
	s.Equal(record.Moves, got.Moves)
	s.Equal(record.Setup, got.Setup)
	s.InDelta(record.Komi, got.Komi, 0.001)
	s.True(record.ImportedAt.Equal(got.ImportedAt))
}

func (s *Suite) TestGetRecordNotFound() {
	_, err := s.Storage.GetRecord(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *Suite) TestSaveRecordOverwrites() {
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("rec-1", 0)))

	renamed := Record("rec-1", 0)
	renamed.Name = "renamed"
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, renamed))

	got, err := s.Storage.GetRecord(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Equal("renamed", got.Name)

	records, err := s.Storage.ListRecords(s.Ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *Suite) TestListRecordsNewestFirst() {
	records, err := s.Storage.ListRecords(s.Ctx)
	s.Require().NoError(err)
	s.Empty(records)

	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("old", 0)))
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("new", 2*time.Hour)))
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("mid", time.Hour)))

	records, err = s.Storage.ListRecords(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(model.RecordID("new"), records[0].ID)
	s.Equal(model.RecordID("mid"), records[1].ID)
	s.Equal(model.RecordID("old"), records[2].ID)
}

func (s *Suite) TestRecordExists() {
	exists, err := s.Storage.RecordExists(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("rec-1", 0)))

	exists, err = s.Storage.RecordExists(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *Suite) TestDeleteRecordRemovesResults() {
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("rec-1", 0)))
	s.Require().NoError(s.Storage.SaveResult(s.Ctx, Result("res-1", "rec-1", 80, 0)))

	s.Require().NoError(s.Storage.DeleteRecord(s.Ctx, "rec-1"))

	_, err := s.Storage.GetRecord(s.Ctx, "rec-1")
	s.ErrorIs(err, model.ErrRecordNotFound)

	records, err := s.Storage.ListRecords(s.Ctx)
	s.Require().NoError(err)
	s.Empty(records)

	results, err := s.Storage.ListResults(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *Suite) TestDeleteMissingRecordIsNoop() {
	s.NoError(s.Storage.DeleteRecord(s.Ctx, "missing"))
}

func (s *Suite) TestSaveAndListResults() {
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("rec-1", 0)))
	s.Require().NoError(s.Storage.SaveRecord(s.Ctx, Record("rec-2", 0)))

	s.Require().NoError(s.Storage.SaveResult(s.Ctx, Result("res-1", "rec-1", 60, time.Minute)))
	s.Require().NoError(s.Storage.SaveResult(s.Ctx, Result("res-2", "rec-1", 90, 3*time.Minute)))
	s.Require().NoError(s.Storage.SaveResult(s.Ctx, Result("res-3", "rec-2", 100, 2*time.Minute)))

	results, err := s.Storage.ListResults(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal("res-2", results[0].ID)
	s.Equal(90, results[0].Accuracy)
	s.Equal(model.Black, results[0].Side)
	s.Equal("res-1", results[1].ID)

	results, err = s.Storage.ListResults(s.Ctx, "rec-2")
	s.Require().NoError(err)
	s.Len(results, 1)
}

func (s *Suite) TestListResultsEmpty() {
	results, err := s.Storage.ListResults(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.NotNil(results)
	s.Empty(results)
}

func (s *Suite) TestSaveResultForMissingRecord() {
	err := s.Storage.SaveResult(s.Ctx, Result("res-1", "missing", 50, 0))
	s.ErrorIs(err, model.ErrRecordNotFound)
}
