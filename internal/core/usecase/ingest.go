package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
)

// IngestDocumentUseCase turns a source file into an analyzable Document:
// extraction by source type, whitespace normalization, and silent token
// truncation to the configured ceiling.
type IngestDocumentUseCase struct {
	tokenizer  ports.Tokenizer
	extractors map[domain.SourceType]ports.TextExtractor
	maxTokens  int
}

func NewIngestDocumentUseCase(
	tokenizer ports.Tokenizer,
	extractors map[domain.SourceType]ports.TextExtractor,
	maxTokens int,
) *IngestDocumentUseCase {
	if maxTokens <= 0 {
		maxTokens = 3000
	}
	return &IngestDocumentUseCase{
		tokenizer:  tokenizer,
		extractors: extractors,
		maxTokens:  maxTokens,
	}
}

func (uc *IngestDocumentUseCase) Process(ctx context.Context, path string) (*domain.Document, error) {
	sourceType, err := sourceTypeForPath(path)
	if err != nil {
		return nil, err
	}

	extractor, ok := uc.extractors[sourceType]
	if !ok {
		return nil, domain.WrapError(domain.ErrUnsupportedFormat, "process file", fmt.Errorf("no extractor for %s", sourceType))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrIngestion, "stat file", err)
	}

	raw, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrIngestion, "extract text", err)
	}

	text, tokenCount := uc.truncate(normalizeWhitespace(raw))

	return &domain.Document{
		ID:   uuid.NewString(),
		Name: filepath.Base(path),
		Text: text,
		Metadata: domain.Metadata{
			SourceType: sourceType,
			ByteSize:   info.Size(),
			TokenCount: tokenCount,
		},
	}, nil
}

// truncate keeps the text intact when it fits the ceiling; otherwise it
// decodes exactly maxTokens tokens. Truncation is silent by contract.
func (uc *IngestDocumentUseCase) truncate(text string) (string, int) {
	ids := uc.tokenizer.Encode(text)
	if len(ids) <= uc.maxTokens {
		return text, len(ids)
	}
	return uc.tokenizer.Decode(ids[:uc.maxTokens]), uc.maxTokens
}

// normalizeWhitespace collapses all whitespace runs, newlines included,
// into single spaces and trims the ends.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func sourceTypeForPath(path string) (domain.SourceType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return domain.SourceTXT, nil
	case ".pdf":
		return domain.SourcePDF, nil
	case ".docx":
		return domain.SourceDOCX, nil
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "process file", fmt.Errorf("extension %q", ext))
	}
}
