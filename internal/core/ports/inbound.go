package ports

import (
	"context"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

// DocumentIngestor is the inbound contract for turning a file into an
// analyzable Document.
type DocumentIngestor interface {
	Process(ctx context.Context, path string) (*domain.Document, error)
}

// BatchRunner drives documents through the analysis capability strictly
// sequentially, emitting one event per document.
type BatchRunner interface {
	Run(ctx context.Context, docs []domain.Document, kind domain.AnalysisKind) <-chan domain.BatchEvent
	BatchAnalyze(ctx context.Context, docs []domain.Document, kind domain.AnalysisKind) []domain.Outcome
}
