package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const documentBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
    <w:p/>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestExtractJoinsParagraphsWithLineBreaks(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"word/document.xml": documentBody,
	})

	text, err := New().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "First paragraph\nSecond paragraph\n\n"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestExtractFailsWithoutDocumentXML(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"word/other.xml": "<x/>",
	})

	if _, err := New().Extract(context.Background(), path); err == nil {
		t.Fatalf("expected error for archive without word/document.xml")
	}
}

func TestExtractFailsOnNonZipInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := New().Extract(context.Background(), path); err == nil {
		t.Fatalf("expected error for malformed archive")
	}
}
