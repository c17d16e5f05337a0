package plaintext

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// Extractor reads .txt files as UTF-8 text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("file is not valid UTF-8: %s", path)
	}
	return string(raw), nil
}
