package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/akozlenkov/content-analyzer/internal/core/usecase"
)

// UsageSnapshot is the ledger state attached to a batch report.
type UsageSnapshot struct {
	DailyUsage       float64
	MonthlyUsage     float64
	RemainingDaily   float64
	RemainingMonthly float64
}

// WriteXLSX renders a finished batch report as a workbook with a summary
// sheet and a per-document outcomes sheet.
func WriteXLSX(path string, batch *usecase.BatchReport, usage UsageSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummary(f, batch, usage); err != nil {
		return err
	}
	if err := writeOutcomes(f, batch); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, batch *usecase.BatchReport, usage UsageSnapshot) error {
	succeeded := 0
	for _, outcome := range batch.Outcomes {
		if outcome.Succeeded() {
			succeeded++
		}
	}

	rows := [][]any{
		{"Run ID", batch.RunID},
		{"Analysis kind", string(batch.Kind)},
		{"Started at", batch.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Finished at", batch.FinishedAt.Format("2006-01-02 15:04:05 MST")},
		{"Documents analyzed", len(batch.Outcomes)},
		{"Succeeded", succeeded},
		{"Failed", len(batch.Outcomes) - succeeded},
		{"Files skipped at ingestion", len(batch.Skipped)},
		{"Estimated cost (USD)", batch.EstimatedCost},
		{"Daily usage (USD)", usage.DailyUsage},
		{"Monthly usage (USD)", usage.MonthlyUsage},
		{"Remaining daily budget (USD)", usage.RemainingDaily},
		{"Remaining monthly budget (USD)", usage.RemainingMonthly},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell name: %w", err)
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return nil
}

func writeOutcomes(f *excelize.File, batch *usecase.BatchReport) error {
	if _, err := f.NewSheet("Outcomes"); err != nil {
		return fmt.Errorf("create outcomes sheet: %w", err)
	}

	header := []any{"#", "Document", "Status", "Error", "Completed at"}
	if err := f.SetSheetRow("Outcomes", "A1", &header); err != nil {
		return fmt.Errorf("write outcomes header: %w", err)
	}

	for i, outcome := range batch.Outcomes {
		status, errMessage := "ok", ""
		if outcome.Err != nil {
			status = string(outcome.Err.Kind)
			errMessage = outcome.Err.Message
		}
		name := outcome.ID
		if i < len(batch.Documents) {
			name = batch.Documents[i].Name
		}
		row := []any{
			i + 1,
			name,
			status,
			errMessage,
			outcome.Timestamp.Format("2006-01-02 15:04:05 MST"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("outcomes cell name: %w", err)
		}
		if err := f.SetSheetRow("Outcomes", cell, &row); err != nil {
			return fmt.Errorf("write outcomes row: %w", err)
		}
	}
	return nil
}
