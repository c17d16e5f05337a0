package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractReadsUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("quarterly report — draft"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	text, err := New().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "quarterly report — draft" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := New().Extract(context.Background(), path); err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
