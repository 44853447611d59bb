package storage

import (
	"context"

	"github.com/mcoot/gomemo/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Record operations
	SaveRecord(ctx context.Context, record *model.GameRecord) error
	GetRecord(ctx context.Context, id model.RecordID) (*model.GameRecord, error)
	ListRecords(ctx context.Context) ([]*model.GameRecord, error)
	DeleteRecord(ctx context.Context, id model.RecordID) error
	RecordExists(ctx context.Context, id model.RecordID) (bool, error)

	// Replay result operations
	SaveResult(ctx context.Context, result *model.ReplayResult) error
	ListResults(ctx context.Context, recordID model.RecordID) ([]*model.ReplayResult, error)
}
