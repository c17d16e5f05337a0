package metrics

import (
	"context"
	"time"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
)

// InstrumentedAnalyzer decorates a ContentAnalyzer with per-document
// counters and duration observations.
type InstrumentedAnalyzer struct {
	next    ports.ContentAnalyzer
	metrics *BatchMetrics
	service string
}

func InstrumentAnalyzer(next ports.ContentAnalyzer, m *BatchMetrics, service string) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{next: next, metrics: m, service: service}
}

func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, text string, kind domain.AnalysisKind) (*domain.Analysis, error) {
	start := time.Now()
	analysis, err := a.next.Analyze(ctx, text, kind)
	a.metrics.ObserveDocument(a.service, time.Since(start), err)
	return analysis, err
}
