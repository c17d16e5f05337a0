package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
)

// SkippedFile records a file that failed ingestion. Per policy such a
// failure is local to one file and never prevents its siblings.
type SkippedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BatchReport is the caller-facing result of one AnalyzeFiles invocation.
type BatchReport struct {
	RunID         string              `json:"run_id"`
	Kind          domain.AnalysisKind `json:"kind"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    time.Time           `json:"finished_at"`
	Documents     []domain.Document   `json:"documents"`
	Outcomes      []domain.Outcome    `json:"outcomes"`
	Skipped       []SkippedFile       `json:"skipped,omitempty"`
	EstimatedCost float64             `json:"estimated_cost"`
}

// AnalyzeFilesUseCase composes the ingestion pipeline, the spend ledger's
// affordability gate, the batch orchestrator, and the run archive into the
// full file-to-findings flow.
type AnalyzeFilesUseCase struct {
	ingestor ports.DocumentIngestor
	ledger   *SpendLedger
	batch    *BatchAnalyzeUseCase
	runs     ports.RunStore
	pricing  ports.PricingFn
	now      func() time.Time
}

func NewAnalyzeFilesUseCase(
	ingestor ports.DocumentIngestor,
	ledger *SpendLedger,
	batch *BatchAnalyzeUseCase,
	runs ports.RunStore,
	pricing ports.PricingFn,
	now func() time.Time,
) *AnalyzeFilesUseCase {
	if now == nil {
		now = time.Now
	}
	return &AnalyzeFilesUseCase{
		ingestor: ingestor,
		ledger:   ledger,
		batch:    batch,
		runs:     runs,
		pricing:  pricing,
		now:      now,
	}
}

// AnalyzeFiles ingests every path (skipping per-file failures), refuses the
// whole batch with ErrBudgetExceeded before any analysis when the estimate
// is unaffordable, runs the batch, then records the same estimate as usage.
func (uc *AnalyzeFilesUseCase) AnalyzeFiles(ctx context.Context, paths []string, kind domain.AnalysisKind) (*BatchReport, error) {
	report := &BatchReport{
		RunID:     uuid.NewString(),
		Kind:      kind,
		StartedAt: uc.now().UTC(),
	}
	report.Documents, report.Skipped = uc.ingestAll(ctx, paths)

	if len(report.Documents) == 0 {
		report.FinishedAt = uc.now().UTC()
		return report, nil
	}

	report.EstimatedCost = uc.estimateTotal(report.Documents)
	if !uc.ledger.CanAfford(report.EstimatedCost) {
		return nil, domain.WrapError(domain.ErrBudgetExceeded, "affordability gate", fmt.Errorf(
			"estimated cost %.4f exceeds remaining budget (daily %.4f, monthly %.4f)",
			report.EstimatedCost,
			uc.ledger.RemainingDailyBudget(),
			uc.ledger.RemainingMonthlyBudget(),
		))
	}

	report.Outcomes = uc.batch.BatchAnalyze(ctx, report.Documents, kind)
	report.FinishedAt = uc.now().UTC()

	if err := uc.ledger.RecordUsage(report.EstimatedCost); err != nil {
		return report, fmt.Errorf("record usage: %w", err)
	}
	if err := uc.archive(ctx, report); err != nil {
		return report, fmt.Errorf("archive batch run: %w", err)
	}
	return report, nil
}

func (uc *AnalyzeFilesUseCase) ingestAll(ctx context.Context, paths []string) ([]domain.Document, []SkippedFile) {
	docs := make([]domain.Document, 0, len(paths))
	var skipped []SkippedFile
	for _, path := range paths {
		doc, err := uc.ingestor.Process(ctx, path)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Error: err.Error()})
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, skipped
}

// estimateTotal prices the same token counts the batch will submit.
func (uc *AnalyzeFilesUseCase) estimateTotal(docs []domain.Document) float64 {
	var total float64
	for _, doc := range docs {
		total += uc.ledger.EstimateCost(doc.Metadata.TokenCount, uc.pricing)
	}
	return total
}

func (uc *AnalyzeFilesUseCase) archive(ctx context.Context, report *BatchReport) error {
	if uc.runs == nil {
		return nil
	}

	run := &domain.BatchRun{
		ID:            report.RunID,
		Kind:          report.Kind,
		StartedAt:     report.StartedAt,
		FinishedAt:    report.FinishedAt,
		Documents:     len(report.Documents),
		EstimatedCost: report.EstimatedCost,
	}
	rows := make([]domain.RunOutcome, 0, len(report.Outcomes))
	for i, outcome := range report.Outcomes {
		row := domain.RunOutcome{
			RunID:        report.RunID,
			Position:     i,
			DocumentID:   outcome.ID,
			DocumentName: report.Documents[i].Name,
			Status:       "ok",
			CompletedAt:  outcome.Timestamp,
		}
		if outcome.Succeeded() {
			run.Succeeded++
		} else {
			run.Failed++
			row.Status = string(outcome.Err.Kind)
			row.ErrorMessage = outcome.Err.Message
		}
		rows = append(rows, row)
	}
	return uc.runs.SaveRun(ctx, run, rows)
}
