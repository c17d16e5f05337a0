package ports

import (
	"context"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

// Tokenizer converts text to token ids and back. Deterministic and pure;
// a missing encoding resource is a startup failure, not a per-call error.
type Tokenizer interface {
	Encode(text string) []uint
	Decode(ids []uint) string
}

// TextExtractor extracts raw text from a file of one source type.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ContentAnalyzer is the external generative-analysis capability.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, text string, kind domain.AnalysisKind) (*domain.Analysis, error)
}

// LedgerStore loads and durably rewrites the full ledger snapshot.
type LedgerStore interface {
	Load() (domain.LedgerRecord, error)
	Save(record domain.LedgerRecord) error
}

// RunStore archives finished batch runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *domain.BatchRun, outcomes []domain.RunOutcome) error
	ListRuns(ctx context.Context, limit int) ([]domain.BatchRun, error)
	ListRunOutcomes(ctx context.Context, runID string) ([]domain.RunOutcome, error)
}

// PricingFn maps a token count to a currency amount. Injectable; the core
// never hardcodes a price.
type PricingFn func(tokenCount int) float64
