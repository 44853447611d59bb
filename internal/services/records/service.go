package records

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/model"
	"github.com/mcoot/gomemo/internal/session"
	"github.com/mcoot/gomemo/internal/sgf"
	"github.com/mcoot/gomemo/internal/storage"
)

// MaxSGFSize bounds the size of an imported file
const MaxSGFSize = 1 << 20

// Service imports and manages game records
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new record Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "records")),
	}
}

// RecordID derives the content-addressed ID of an SGF file
func RecordID(data []byte) model.RecordID {
	sum := blake2b.Sum256(data)
	return model.RecordID(hex.EncodeToString(sum[:8]))
}

// Import parses an SGF file and stores it. Importing the same content twice
// returns the existing record unchanged.
func (s *Service) Import(ctx context.Context, name string, data []byte) (*model.GameRecord, error) {
	if len(data) > MaxSGFSize {
		return nil, fmt.Errorf("%w: file larger than %d bytes", model.ErrInvalidSGF, MaxSGFSize)
	}

	id := RecordID(data)
	existing, err := s.storage.GetRecord(ctx, id)
	switch {
	case err == nil:
		s.logger.Debug("record already imported", slog.String("record_id", string(id)))
		return existing, nil
	case !errors.Is(err, model.ErrRecordNotFound):
		return nil, err
	}

	parsed, err := sgf.Parse(data)
	if err != nil {
		return nil, err
	}

	// Building a session checks everything replay relies on
	if _, err := session.New(parsed.Moves, parsed.BoardSize, parsed.Setup, s.clock); err != nil {
		return nil, err
	}

	record := &model.GameRecord{
		ID:          id,
		Name:        recordName(name, parsed),
		BoardSize:   parsed.BoardSize,
		Moves:       parsed.Moves,
		Setup:       parsed.Setup,
		Komi:        parsed.Komi,
		PlayerBlack: parsed.PlayerBlack,
		PlayerWhite: parsed.PlayerWhite,
		Result:      parsed.Result,
		Date:        parsed.Date,
		ImportedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveRecord(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("record imported",
		slog.String("record_id", string(id)),
		slog.String("name", record.Name),
		slog.Int("moves", record.TotalMoves()),
		slog.Int("board_size", record.BoardSize),
	)
	return record, nil
}

// ImportFile reads and imports an SGF file from disk. The file name is used
// when the record carries no name of its own.
func (s *Service) ImportFile(ctx context.Context, path string) (*model.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s.Import(ctx, name, data)
}

// Get returns a record by ID
func (s *Service) Get(ctx context.Context, id model.RecordID) (*model.GameRecord, error) {
	return s.storage.GetRecord(ctx, id)
}

// List returns all records, most recently imported first
func (s *Service) List(ctx context.Context) ([]*model.GameRecord, error) {
	return s.storage.ListRecords(ctx)
}

// Delete removes a record and its replay history
func (s *Service) Delete(ctx context.Context, id model.RecordID) error {
	exists, err := s.storage.RecordExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrRecordNotFound
	}

	if err := s.storage.DeleteRecord(ctx, id); err != nil {
		return err
	}
	s.logger.Info("record deleted", slog.String("record_id", string(id)))
	return nil
}

// recordName picks the first non-empty of: the caller's name, the game name,
// "Black vs White", or a placeholder
func recordName(name string, parsed *sgf.Record) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if parsed.GameName != "" {
		return parsed.GameName
	}
	if parsed.PlayerBlack != "" || parsed.PlayerWhite != "" {
		return fmt.Sprintf("%s vs %s", orUnknown(parsed.PlayerBlack), orUnknown(parsed.PlayerWhite))
	}
	return "Untitled game"
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
