package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records map[model.RecordID]*model.GameRecord
	results map[model.RecordID][]*model.ReplayResult
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records: make(map[model.RecordID]*model.GameRecord),
		results: make(map[model.RecordID][]*model.ReplayResult),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

// ListRecords returns all records, most recently imported first
func (s *Storage) ListRecords(ctx context.Context) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.GameRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	storage.SortRecords(records)
	return records, nil
}

// DeleteRecord removes the record and its replay history
func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	delete(s.results, id)
	return nil
}

func (s *Storage) RecordExists(ctx context.Context, id model.RecordID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

// Replay result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.ReplayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[result.RecordID]; !ok {
		return model.ErrRecordNotFound
	}
	s.results[result.RecordID] = append(s.results[result.RecordID], result)
	return nil
}

// ListResults returns the record's results, most recent first
func (s *Storage) ListResults(ctx context.Context, recordID model.RecordID) ([]*model.ReplayResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := slices.Clone(s.results[recordID])
	if results == nil {
		results = []*model.ReplayResult{}
	}
	storage.SortResults(results)
	return results, nil
}
