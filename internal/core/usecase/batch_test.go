package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

type analyzerFake struct {
	calls   []string
	failOn  map[string]error
	healthy *domain.Analysis
}

func newAnalyzerFake() *analyzerFake {
	return &analyzerFake{
		failOn: map[string]error{},
		healthy: &domain.Analysis{
			Kind:            domain.KindGeneralBusiness,
			GeneralBusiness: &domain.GeneralBusinessAnalysis{Summary: "ok"},
		},
	}
}

func (f *analyzerFake) Analyze(_ context.Context, text string, _ domain.AnalysisKind) (*domain.Analysis, error) {
	f.calls = append(f.calls, text)
	if err, ok := f.failOn[text]; ok {
		return nil, err
	}
	return f.healthy, nil
}

func testDocs(texts ...string) []domain.Document {
	docs := make([]domain.Document, 0, len(texts))
	for i, text := range texts {
		docs = append(docs, domain.Document{
			ID:   fmt.Sprintf("doc-%d", i+1),
			Name: fmt.Sprintf("doc-%d.txt", i+1),
			Text: text,
		})
	}
	return docs
}

func TestBatchAnalyzeReturnsOutcomePerDocumentInOrder(t *testing.T) {
	analyzer := newAnalyzerFake()
	uc := NewBatchAnalyzeUseCase(analyzer, 0, fixedClock(testNow))

	docs := testDocs("alpha", "beta", "gamma")
	outcomes := uc.BatchAnalyze(context.Background(), docs, domain.KindGeneralBusiness)

	if len(outcomes) != len(docs) {
		t.Fatalf("expected %d outcomes, got %d", len(docs), len(outcomes))
	}
	for i, outcome := range outcomes {
		if outcome.ID != docs[i].ID {
			t.Fatalf("outcome %d aligned to %q, want %q", i, outcome.ID, docs[i].ID)
		}
		if !outcome.Succeeded() {
			t.Fatalf("outcome %d unexpectedly failed: %v", i, outcome.Err)
		}
		if outcome.Timestamp.IsZero() {
			t.Fatalf("outcome %d missing timestamp", i)
		}
	}
}

func TestRunEmitsStrictlyIncreasingProgress(t *testing.T) {
	uc := NewBatchAnalyzeUseCase(newAnalyzerFake(), 0, fixedClock(testNow))
	docs := testDocs("a", "b", "c", "d")

	var completed []int
	for event := range uc.Run(context.Background(), docs, domain.KindGeneralBusiness) {
		completed = append(completed, event.Completed)
		if event.Total != len(docs) {
			t.Fatalf("expected total %d, got %d", len(docs), event.Total)
		}
	}
	if len(completed) != len(docs) {
		t.Fatalf("expected exactly %d progress events, got %d", len(docs), len(completed))
	}
	for i, got := range completed {
		if got != i+1 {
			t.Fatalf("expected strictly increasing progress, event %d reported %d", i, got)
		}
	}
}

func TestEmptyDocumentSkipsAnalyzerCall(t *testing.T) {
	analyzer := newAnalyzerFake()
	uc := NewBatchAnalyzeUseCase(analyzer, 0, fixedClock(testNow))

	outcomes := uc.BatchAnalyze(context.Background(), testDocs("first", "", "third"), domain.KindGeneralBusiness)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	middle := outcomes[1]
	if middle.Err == nil || middle.Err.Kind != domain.OutcomeEmptyDocument {
		t.Fatalf("expected empty_document outcome, got %+v", middle)
	}
	if middle.Analysis != nil {
		t.Fatalf("failed outcome must not carry an analysis")
	}
	if len(analyzer.calls) != 2 {
		t.Fatalf("analyzer must not be called for empty documents, saw calls %v", analyzer.calls)
	}
	if !outcomes[0].Succeeded() || !outcomes[2].Succeeded() {
		t.Fatalf("sibling documents must be unaffected")
	}
}

func TestAnalyzerFaultIsIsolatedToOneDocument(t *testing.T) {
	analyzer := newAnalyzerFake()
	analyzer.failOn["beta"] = errors.New("service unavailable")
	uc := NewBatchAnalyzeUseCase(analyzer, 0, fixedClock(testNow))

	outcomes := uc.BatchAnalyze(context.Background(), testDocs("alpha", "beta", "gamma"), domain.KindGeneralBusiness)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	failed := outcomes[1]
	if failed.Err == nil || failed.Err.Kind != domain.OutcomeAnalysisFailed {
		t.Fatalf("expected analysis_failed outcome, got %+v", failed)
	}
	if failed.Err.Message != "service unavailable" {
		t.Fatalf("outcome must carry the underlying message, got %q", failed.Err.Message)
	}
	if !outcomes[0].Succeeded() || !outcomes[2].Succeeded() {
		t.Fatalf("one document's failure must never affect its siblings")
	}
	if len(analyzer.calls) != 3 {
		t.Fatalf("batch must continue past failures, saw %d calls", len(analyzer.calls))
	}
}

func TestPacingDelayAppliedAfterEveryDocument(t *testing.T) {
	delay := 20 * time.Millisecond
	uc := NewBatchAnalyzeUseCase(newAnalyzerFake(), delay, nil)
	docs := testDocs("a", "b", "")

	start := time.Now()
	uc.BatchAnalyze(context.Background(), docs, domain.KindGeneralBusiness)
	elapsed := time.Since(start)

	// Pacing runs after every document, skips and failures included.
	if min := time.Duration(len(docs)) * delay; elapsed < min {
		t.Fatalf("expected at least %v of pacing, batch finished in %v", min, elapsed)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	uc := NewBatchAnalyzeUseCase(newAnalyzerFake(), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())

	events := uc.Run(ctx, testDocs("a", "b"), domain.KindGeneralBusiness)
	if _, ok := <-events; !ok {
		t.Fatalf("expected first event before cancellation")
	}
	cancel()
	for range events {
	}
}
