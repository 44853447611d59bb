package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Records and results are stored as JSON documents alongside the columns
// needed to order and filter them.
type Storage struct {
	db *sql.DB
}

// New opens (creating if missing) the database file and applies the schema
func New(cfg Config) (*Storage, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, name, imported_at, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			imported_at = excluded.imported_at,
			data = excluded.data`,
		string(record.ID), record.Name, record.ImportedAt.UnixNano(), data,
	)
	return err
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.GameRecord, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM records WHERE id = ?`, string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) ListRecords(ctx context.Context) ([]*model.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*model.GameRecord{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var record model.GameRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortRecords(records)
	return records, nil
}

// DeleteRecord removes the record; its results go with it via the foreign key
func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, string(id))
	return err
}

func (s *Storage) RecordExists(ctx context.Context, id model.RecordID) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM records WHERE id = ?`, string(id),
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Replay result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.ReplayResult) error {
	exists, err := s.RecordExists(ctx, result.RecordID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrRecordNotFound
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, record_id, completed_at, data)
		VALUES (?, ?, ?, ?)`,
		result.ID, string(result.RecordID), result.CompletedAt.UnixNano(), data,
	)
	return err
}

func (s *Storage) ListResults(ctx context.Context, recordID model.RecordID) ([]*model.ReplayResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM results
		WHERE record_id = ?
		ORDER BY rowid ASC`, string(recordID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*model.ReplayResult{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var result model.ReplayResult
		if err := json.Unmarshal(data, &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortResults(results)
	return results, nil
}
