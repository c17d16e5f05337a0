package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
)

// parseAnalysis decodes the model's JSON content into the typed schema of
// the requested kind. Malformed content is an error for the caller to turn
// into an analysis_failed outcome.
func parseAnalysis(kind domain.AnalysisKind, raw string) (*domain.Analysis, error) {
	payload := []byte(extractJSONObject(raw))

	switch kind {
	case domain.KindCompetitiveIntel:
		var result domain.CompetitiveIntelAnalysis
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("parse %s analysis: %w", kind, err)
		}
		ensureSlices(&result.Competitors, &result.Strengths, &result.Weaknesses, &result.Opportunities, &result.Threats)
		return &domain.Analysis{Kind: kind, CompetitiveIntel: &result}, nil

	case domain.KindCustomerFeedback:
		var result domain.CustomerFeedbackAnalysis
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("parse %s analysis: %w", kind, err)
		}
		ensureSlices(&result.Themes, &result.Complaints, &result.Praise, &result.SuggestedActions)
		return &domain.Analysis{Kind: kind, CustomerFeedback: &result}, nil

	case domain.KindGeneralBusiness:
		var result domain.GeneralBusinessAnalysis
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("parse %s analysis: %w", kind, err)
		}
		ensureSlices(&result.KeyPoints, &result.ActionItems, &result.Risks)
		return &domain.Analysis{Kind: kind, GeneralBusiness: &result}, nil

	default:
		return nil, fmt.Errorf("unknown analysis kind: %q", kind)
	}
}

func ensureSlices(slices ...*[]string) {
	for _, s := range slices {
		if *s == nil {
			*s = []string{}
		}
	}
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
