package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akozlenkov/content-analyzer/internal/bootstrap"
	"github.com/akozlenkov/content-analyzer/internal/config"
	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/usecase"
	"github.com/akozlenkov/content-analyzer/internal/observability/logging"
	"github.com/akozlenkov/content-analyzer/internal/report"
)

var supportedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "analyzer",
		Short:         "Batch document analysis with budget enforcement",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")

	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newUsageCmd(&configPath))
	root.AddCommand(newHistoryCmd(&configPath))
	return root
}

func loadConfig(configPath string) (config.Config, error) {
	if configPath == "" {
		return config.Load(), nil
	}
	return config.FromFile(configPath)
}

func newApp(ctx context.Context, configPath string) (*bootstrap.App, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logging.Setup("content-analyzer-cli", cfg.LogLevel)
	return bootstrap.New(ctx, cfg)
}

func newRunCmd(configPath *string) *cobra.Command {
	var (
		dir        string
		kindName   string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze every supported document in a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domain.ParseAnalysisKind(kindName)
			if err != nil {
				return err
			}
			paths, err := collectDocuments(dir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no supported documents in %s", dir)
			}

			app, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			batch, err := app.AnalyzeUC.AnalyzeFiles(cmd.Context(), paths, kind)
			if err != nil {
				return err
			}
			printBatch(cmd, batch)

			if reportPath != "" {
				usage := report.UsageSnapshot{
					DailyUsage:       app.Ledger.CurrentDailyUsage(),
					MonthlyUsage:     app.Ledger.CurrentMonthlyUsage(),
					RemainingDaily:   app.Ledger.RemainingDailyBudget(),
					RemainingMonthly: app.Ledger.RemainingMonthlyBudget(),
				}
				if err := report.WriteXLSX(reportPath, batch, usage); err != nil {
					return err
				}
				cmd.Printf("report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory with documents to analyze")
	cmd.Flags().StringVar(&kindName, "kind", string(domain.KindGeneralBusiness), "analysis kind")
	cmd.Flags().StringVar(&reportPath, "report", "", "write an xlsx report to this path")
	return cmd
}

func newUsageCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show current spend against the daily and monthly budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			cmd.Printf("daily usage:        $%.4f\n", app.Ledger.CurrentDailyUsage())
			cmd.Printf("remaining daily:    $%.4f\n", app.Ledger.RemainingDailyBudget())
			cmd.Printf("monthly usage:      $%.4f\n", app.Ledger.CurrentMonthlyUsage())
			cmd.Printf("remaining monthly:  $%.4f\n", app.Ledger.RemainingMonthlyBudget())
			return nil
		},
	}
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List archived batch runs, or the outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 1 {
				outcomes, err := app.Runs.ListRunOutcomes(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, outcome := range outcomes {
					status := outcome.Status
					if outcome.ErrorMessage != "" {
						status += " (" + outcome.ErrorMessage + ")"
					}
					cmd.Printf("%3d  %-30s  %s\n", outcome.Position+1, outcome.DocumentName, status)
				}
				return nil
			}

			runs, err := app.Runs.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				cmd.Printf("%s  %-24s  %s  docs=%d ok=%d failed=%d est=$%.4f\n",
					run.ID,
					string(run.Kind),
					run.StartedAt.Format("2006-01-02 15:04"),
					run.Documents,
					run.Succeeded,
					run.Failed,
					run.EstimatedCost,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max runs to list")
	return cmd
}

func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func printBatch(cmd *cobra.Command, batch *usecase.BatchReport) {
	succeeded := 0
	for i, outcome := range batch.Outcomes {
		name := outcome.ID
		if i < len(batch.Documents) {
			name = batch.Documents[i].Name
		}
		if outcome.Succeeded() {
			succeeded++
			cmd.Printf("ok      %s\n", name)
			continue
		}
		cmd.Printf("failed  %s: %s\n", name, outcome.Err.Message)
	}
	for _, skipped := range batch.Skipped {
		cmd.Printf("skipped %s: %s\n", skipped.Path, skipped.Error)
	}
	cmd.Printf("run %s: %d analyzed, %d failed, %d skipped, estimated cost $%.4f\n",
		batch.RunID, succeeded, len(batch.Outcomes)-succeeded, len(batch.Skipped), batch.EstimatedCost)
}
