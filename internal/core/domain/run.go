package domain

import "time"

// BatchRun is the archived summary of one finished batch.
type BatchRun struct {
	ID            string       `json:"id"`
	Kind          AnalysisKind `json:"kind"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
	Documents     int          `json:"documents"`
	Succeeded     int          `json:"succeeded"`
	Failed        int          `json:"failed"`
	EstimatedCost float64      `json:"estimated_cost"`
}

// RunOutcome is one archived per-document row of a batch run.
type RunOutcome struct {
	RunID        string    `json:"run_id"`
	Position     int       `json:"position"`
	DocumentID   string    `json:"document_id"`
	DocumentName string    `json:"document_name"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}
