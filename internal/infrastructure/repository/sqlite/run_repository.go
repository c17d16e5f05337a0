package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

// RunRepository archives finished batch runs in a local sqlite database.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	// Single-operator deployment; one writer is plenty.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS batch_runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	documents INTEGER NOT NULL,
	succeeded INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	estimated_cost REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS run_outcomes (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	document_id TEXT NOT NULL,
	document_name TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	completed_at TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_batch_runs_started_at ON batch_runs(started_at DESC);
`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

func (r *RunRepository) SaveRun(ctx context.Context, run *domain.BatchRun, outcomes []domain.RunOutcome) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO batch_runs (id, kind, started_at, finished_at, documents, succeeded, failed, estimated_cost)
VALUES (?,?,?,?,?,?,?,?)
`,
		run.ID, string(run.Kind), run.StartedAt, run.FinishedAt,
		run.Documents, run.Succeeded, run.Failed, run.EstimatedCost,
	)
	if err != nil {
		return fmt.Errorf("insert batch run: %w", err)
	}

	for _, outcome := range outcomes {
		_, err = tx.ExecContext(ctx, `
INSERT INTO run_outcomes (run_id, position, document_id, document_name, status, error_message, completed_at)
VALUES (?,?,?,?,?,?,?)
`,
			outcome.RunID, outcome.Position, outcome.DocumentID, outcome.DocumentName,
			outcome.Status, outcome.ErrorMessage, outcome.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("insert run outcome %d: %w", outcome.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run tx: %w", err)
	}
	return nil
}

func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]domain.BatchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, kind, started_at, finished_at, documents, succeeded, failed, estimated_cost
FROM batch_runs
ORDER BY started_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batch runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.BatchRun
	for rows.Next() {
		var run domain.BatchRun
		var kind string
		var startedAt, finishedAt time.Time
		if err := rows.Scan(&run.ID, &kind, &startedAt, &finishedAt, &run.Documents, &run.Succeeded, &run.Failed, &run.EstimatedCost); err != nil {
			return nil, fmt.Errorf("scan batch run: %w", err)
		}
		run.Kind = domain.AnalysisKind(kind)
		run.StartedAt = startedAt
		run.FinishedAt = finishedAt
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch runs: %w", err)
	}
	return runs, nil
}

func (r *RunRepository) ListRunOutcomes(ctx context.Context, runID string) ([]domain.RunOutcome, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT run_id, position, document_id, document_name, status, error_message, completed_at
FROM run_outcomes
WHERE run_id = ?
ORDER BY position
`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.RunOutcome
	for rows.Next() {
		var outcome domain.RunOutcome
		var errMessage sql.NullString
		if err := rows.Scan(&outcome.RunID, &outcome.Position, &outcome.DocumentID, &outcome.DocumentName, &outcome.Status, &errMessage, &outcome.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan run outcome: %w", err)
		}
		outcome.ErrorMessage = errMessage.String
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run outcomes: %w", err)
	}
	if len(outcomes) == 0 {
		return nil, domain.WrapError(domain.ErrRunNotFound, "list run outcomes", fmt.Errorf("run %s", runID))
	}
	return outcomes, nil
}
