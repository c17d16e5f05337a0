package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

// Store keeps the ledger record as a single JSON document on disk.
// Every Save rewrites the full snapshot; the write goes to a temporary
// file in the same directory and is renamed over the store so a crash
// mid-write never leaves a half-written record.
type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		path = "./data/usage_data.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the persisted record. A missing store is not an error on
// first run; it yields an empty record.
func (s *Store) Load() (domain.LedgerRecord, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewLedgerRecord(), nil
	}
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("read ledger store: %w", err)
	}

	var record domain.LedgerRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("parse ledger store: %w", err)
	}
	if record.Daily == nil {
		record.Daily = map[string]float64{}
	}
	if record.Monthly == nil {
		record.Monthly = map[string]float64{}
	}
	return record, nil
}

func (s *Store) Save(record domain.LedgerRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".usage-*.json")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace ledger store: %w", err)
	}
	return nil
}
