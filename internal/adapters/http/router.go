package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
	"github.com/akozlenkov/content-analyzer/internal/core/usecase"
	"github.com/akozlenkov/content-analyzer/internal/infrastructure/storage/localfs"
	"github.com/akozlenkov/content-analyzer/internal/observability/metrics"
)

const maxUploadBytes = 64 << 20

type Router struct {
	analyzeUC *usecase.AnalyzeFilesUseCase
	ledger    *usecase.SpendLedger
	runs      ports.RunStore
	uploads   *localfs.Staging
	metrics   *metrics.BatchMetrics
}

func NewRouter(
	analyzeUC *usecase.AnalyzeFilesUseCase,
	ledger *usecase.SpendLedger,
	runs ports.RunStore,
	uploads *localfs.Staging,
	m *metrics.BatchMetrics,
) *Router {
	return &Router{
		analyzeUC: analyzeUC,
		ledger:    ledger,
		runs:      runs,
		uploads:   uploads,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/analyze", rt.analyzeBatch)
	mux.HandleFunc("/v1/usage", rt.getUsage)
	mux.HandleFunc("/v1/runs", rt.listRuns)
	mux.HandleFunc("/v1/runs/", rt.getRunOutcomes)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeBatch stages every uploaded file, runs the batch synchronously,
// and responds with the full report. Staged copies are removed afterwards.
func (rt *Router) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	kind, err := domain.ParseAnalysisKind(r.FormValue("kind"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}

	paths := make([]string, 0, len(files))
	defer func() {
		for _, path := range paths {
			rt.uploads.Remove(path)
		}
	}()
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable upload " + fileHeader.Filename})
			return
		}
		path, err := rt.uploads.Stage(r.Context(), fileHeader.Filename, file)
		file.Close()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		paths = append(paths, path)
	}

	if rt.metrics != nil {
		rt.metrics.StartBatch()
		defer rt.metrics.FinishBatch()
	}
	report, err := rt.analyzeUC.AnalyzeFiles(r.Context(), paths, kind)
	if rt.metrics != nil {
		rt.metrics.SetSpend(rt.ledger.CurrentDailyUsage(), rt.ledger.CurrentMonthlyUsage())
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) getUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"daily_usage":       rt.ledger.CurrentDailyUsage(),
		"monthly_usage":     rt.ledger.CurrentMonthlyUsage(),
		"remaining_daily":   rt.ledger.RemainingDailyBudget(),
		"remaining_monthly": rt.ledger.RemainingMonthlyBudget(),
	})
}

func (rt *Router) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := rt.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (rt *Router) getRunOutcomes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	runID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/runs/"), "/outcomes")
	if runID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "run id is required"})
		return
	}

	outcomes, err := rt.runs.ListRunOutcomes(r.Context(), runID)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run_id": runID, "outcomes": outcomes})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
