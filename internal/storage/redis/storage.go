package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey(record.ID), data, s.cfg.RecordTTL)
	pipe.SAdd(ctx, recordIndexKey(), string(record.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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
	ids, err := s.client.SMembers(ctx, recordIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.GameRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(model.RecordID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	var stale []any
	for i, val := range values {
		if val == nil {
			// Record expired; drop it from the index below
			stale = append(stale, ids[i])
			continue
		}
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, recordIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	storage.SortRecords(records)
	return records, nil
}

// DeleteRecord removes the record, its index entry and its replay history
func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, recordKey(id), resultsKey(id))
	pipe.SRem(ctx, recordIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) RecordExists(ctx context.Context, id model.RecordID) (bool, error) {
	exists, err := s.client.Exists(ctx, recordKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
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

	key := resultsKey(result.RecordID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if s.cfg.ResultTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.ResultTTL) // Refreshed on every new result
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListResults(ctx context.Context, recordID model.RecordID) ([]*model.ReplayResult, error) {
	values, err := s.client.LRange(ctx, resultsKey(recordID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.ReplayResult, 0, len(values))
	for _, val := range values {
		var result model.ReplayResult
		if err := json.Unmarshal([]byte(val), &result); err != nil {
			continue // Skip invalid data
		}
		results = append(results, &result)
	}

	storage.SortResults(results)
	return results, nil
}
