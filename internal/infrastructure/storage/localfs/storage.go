package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Staging stores uploaded documents on local disk so the ingestion
// pipeline can read them back by path.
type Staging struct {
	basePath string
}

func New(basePath string) (*Staging, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Staging{basePath: basePath}, nil
}

// Stage writes one upload to disk under a collision-free name and returns
// the path. The original extension is preserved; format dispatch depends
// on it.
func (s *Staging) Stage(_ context.Context, filename string, data io.Reader) (string, error) {
	name := filepath.Base(filename)
	path := filepath.Join(s.basePath, uuid.NewString()+"_"+name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	return path, nil
}

// Remove deletes a staged file once the batch no longer needs it.
func (s *Staging) Remove(path string) {
	os.Remove(path)
}
