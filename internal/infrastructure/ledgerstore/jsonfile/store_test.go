package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "usage_data.json"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store
}

func TestLoadMissingStoreYieldsEmptyRecord(t *testing.T) {
	record, err := newStore(t).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(record.Daily) != 0 || len(record.Monthly) != 0 {
		t.Fatalf("expected empty record, got %+v", record)
	}
	if record.Daily == nil || record.Monthly == nil {
		t.Fatalf("maps must be initialized")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	record := domain.NewLedgerRecord()
	record.Daily["2026-08-31"] = 12.5
	record.Monthly["2026-08"] = 40.25

	if err := store.Save(record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Daily["2026-08-31"] != 12.5 {
		t.Fatalf("daily bucket lost: %+v", loaded.Daily)
	}
	if loaded.Monthly["2026-08"] != 40.25 {
		t.Fatalf("monthly bucket lost: %+v", loaded.Monthly)
	}
}

func TestSaveWritesDocumentedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage_data.json")
	store, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	record := domain.NewLedgerRecord()
	record.Daily["2026-08-31"] = 1
	record.Monthly["2026-08"] = 1
	if err := store.Save(record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var shape map[string]map[string]float64
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("store is not the documented JSON shape: %v", err)
	}
	if _, ok := shape["daily"]; !ok {
		t.Fatalf(`store missing "daily" key: %s`, raw)
	}
	if _, ok := shape["monthly"]; !ok {
		t.Fatalf(`store missing "monthly" key: %s`, raw)
	}
}

func TestLoadCorruptStoreFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage_data.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("write corrupt store: %v", err)
	}
	store, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Fatalf("expected error for corrupt store")
	}
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "usage_data.json"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := store.Save(domain.NewLedgerRecord()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "usage_data.json" {
		t.Fatalf("expected only the store file, got %v", entries)
	}
}
