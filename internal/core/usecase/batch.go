package usecase

import (
	"context"
	"time"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
)

// BatchAnalyzeUseCase drives documents through the analysis capability
// strictly sequentially, isolating per-document failures and pacing calls
// with a fixed, unconditional delay.
type BatchAnalyzeUseCase struct {
	analyzer ports.ContentAnalyzer
	delay    time.Duration
	now      func() time.Time
}

func NewBatchAnalyzeUseCase(analyzer ports.ContentAnalyzer, delay time.Duration, now func() time.Time) *BatchAnalyzeUseCase {
	if now == nil {
		now = time.Now
	}
	return &BatchAnalyzeUseCase{
		analyzer: analyzer,
		delay:    delay,
		now:      now,
	}
}

// Run emits one BatchEvent per input document, in input order, with
// Completed strictly increasing from 1 to len(docs). The channel is closed
// when the batch finishes or ctx is cancelled.
func (uc *BatchAnalyzeUseCase) Run(ctx context.Context, docs []domain.Document, kind domain.AnalysisKind) <-chan domain.BatchEvent {
	events := make(chan domain.BatchEvent)
	go func() {
		defer close(events)
		total := len(docs)
		for i, doc := range docs {
			outcome := uc.analyzeOne(ctx, doc, kind)
			select {
			case events <- domain.BatchEvent{Outcome: outcome, Completed: i + 1, Total: total}:
			case <-ctx.Done():
				return
			}
			if !uc.pace(ctx) {
				return
			}
		}
	}()
	return events
}

// BatchAnalyze collects Run's events into an ordered outcome slice, one
// outcome per input document, positionally aligned even on failure.
func (uc *BatchAnalyzeUseCase) BatchAnalyze(ctx context.Context, docs []domain.Document, kind domain.AnalysisKind) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(docs))
	for event := range uc.Run(ctx, docs, kind) {
		outcomes = append(outcomes, event.Outcome)
	}
	return outcomes
}

func (uc *BatchAnalyzeUseCase) analyzeOne(ctx context.Context, doc domain.Document, kind domain.AnalysisKind) domain.Outcome {
	if doc.Text == "" {
		return domain.Outcome{
			ID:        doc.ID,
			Timestamp: uc.now(),
			Err: &domain.OutcomeError{
				Kind:    domain.OutcomeEmptyDocument,
				Message: "document has no analyzable text",
			},
		}
	}

	analysis, err := uc.analyzer.Analyze(ctx, doc.Text, kind)
	if err != nil {
		return domain.Outcome{
			ID:        doc.ID,
			Timestamp: uc.now(),
			Err: &domain.OutcomeError{
				Kind:    domain.OutcomeAnalysisFailed,
				Message: err.Error(),
			},
		}
	}

	return domain.Outcome{
		ID:        doc.ID,
		Timestamp: uc.now(),
		Analysis:  analysis,
	}
}

// pace blocks for the inter-call delay after every document, success or
// failure alike. The delay is not adaptive to errors.
func (uc *BatchAnalyzeUseCase) pace(ctx context.Context) bool {
	if uc.delay <= 0 {
		return true
	}
	timer := time.NewTimer(uc.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
