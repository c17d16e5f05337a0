package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akozlenkov/content-analyzer/internal/config"
	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
	"github.com/akozlenkov/content-analyzer/internal/core/usecase"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/extractor/docx"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/extractor/pdf"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/extractor/plaintext"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/ledgerstore/jsonfile"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/llm/openai"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/repository/sqlite"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/resilience"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/storage/localfs"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/tokenizer/tiktoken"
	"github.com/akozlenkov/content-analyzer/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Ledger    *usecase.SpendLedger
	Runs      ports.RunStore
	IngestUC  ports.DocumentIngestor
	AnalyzeUC *usecase.AnalyzeFilesUseCase
	Uploads   *localfs.Staging
	Metrics   *metrics.BatchMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	tok, err := tiktoken.New()
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	extractors := map[domain.SourceType]ports.TextExtractor{
		domain.SourceTXT:  plaintext.New(),
		domain.SourcePDF:  pdf.New(),
		domain.SourceDOCX: docx.New(),
	}
	ingestUC := usecase.NewIngestDocumentUseCase(tok, extractors, cfg.MaxTokens)

	if err := os.MkdirAll(filepath.Dir(cfg.LedgerPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	ledgerStore, err := jsonfile.New(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("init ledger store: %w", err)
	}
	ledger, err := usecase.NewSpendLedger(ledgerStore, cfg.DailyLimitUSD, cfg.MonthlyLimitUSD, nil)
	if err != nil {
		return nil, fmt.Errorf("init spend ledger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sqlite.OpenDB(cfg.HistoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	runs := sqlite.NewRunRepository(db)
	if err := runs.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure history schema: %w", err)
	}

	m := metrics.NewBatchMetrics("content-analyzer")

	var analyzer ports.ContentAnalyzer = openai.New(
		cfg.OpenAIURL,
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.RequestsPerSecond,
		resilience.DefaultPolicy(),
	)
	analyzer = metrics.InstrumentAnalyzer(analyzer, m, "openai")

	batchUC := usecase.NewBatchAnalyzeUseCase(analyzer, cfg.InterCallDelay, nil)
	analyzeUC := usecase.NewAnalyzeFilesUseCase(
		ingestUC,
		ledger,
		batchUC,
		runs,
		pricingFromConfig(cfg),
		nil,
	)

	uploads, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload staging: %w", err)
	}

	return &App{
		Config: cfg,

		Ledger:    ledger,
		Runs:      runs,
		IngestUC:  ingestUC,
		AnalyzeUC: analyzeUC,
		Uploads:   uploads,
		Metrics:   m,

		closeFn: func() {
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func pricingFromConfig(cfg config.Config) ports.PricingFn {
	return func(tokenCount int) float64 {
		return float64(tokenCount) * cfg.CostPerTokenUSD
	}
}
