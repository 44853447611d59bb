package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gomemo/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	storage *Storage
	path    string
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "nested", "gomemo.db")

	cfg := DefaultConfig()
	cfg.Path = s.path

	var err error
	s.storage, err = New(cfg)
	s.Require().NoError(err)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestDataSurvivesReopen() {
	s.Require().NoError(s.storage.SaveRecord(s.Ctx, storagetest.Record("rec-1", 0)))
	s.Require().NoError(s.storage.SaveResult(s.Ctx, storagetest.Result("res-1", "rec-1", 75, 0)))
	s.Require().NoError(s.storage.Close())

	cfg := DefaultConfig()
	cfg.Path = s.path
	reopened, err := New(cfg)
	s.Require().NoError(err)
	s.storage = reopened

	record, err := reopened.GetRecord(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Equal("game rec-1", record.Name)

	results, err := reopened.ListResults(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(75, results[0].Accuracy)
}

func (s *StorageSuite) TestResaveKeepsResults() {
	s.Require().NoError(s.storage.SaveRecord(s.Ctx, storagetest.Record("rec-1", 0)))
	s.Require().NoError(s.storage.SaveResult(s.Ctx, storagetest.Result("res-1", "rec-1", 75, 0)))
	s.Require().NoError(s.storage.SaveRecord(s.Ctx, storagetest.Record("rec-1", 0)))

	results, err := s.storage.ListResults(s.Ctx, "rec-1")
	s.Require().NoError(err)
	s.Len(results, 1)
}
