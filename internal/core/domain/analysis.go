package domain

import (
	"fmt"
	"time"
)

type AnalysisKind string

const (
	KindGeneralBusiness  AnalysisKind = "general_business"
	KindCompetitiveIntel AnalysisKind = "competitive_intelligence"
	KindCustomerFeedback AnalysisKind = "customer_feedback"
)

func ParseAnalysisKind(raw string) (AnalysisKind, error) {
	switch AnalysisKind(raw) {
	case KindGeneralBusiness, KindCompetitiveIntel, KindCustomerFeedback:
		return AnalysisKind(raw), nil
	default:
		return "", fmt.Errorf("unknown analysis kind: %q", raw)
	}
}

type GeneralBusinessAnalysis struct {
	Summary     string   `json:"summary"`
	Sentiment   string   `json:"sentiment"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Risks       []string `json:"risks"`
}

type CompetitiveIntelAnalysis struct {
	Summary       string   `json:"summary"`
	Competitors   []string `json:"competitors"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type CustomerFeedbackAnalysis struct {
	Sentiment        string   `json:"sentiment"`
	Satisfaction     float64  `json:"satisfaction"`
	Themes           []string `json:"themes"`
	Complaints       []string `json:"complaints"`
	Praise           []string `json:"praise"`
	SuggestedActions []string `json:"suggested_actions"`
}

// Analysis is a tagged union over the closed set of analysis kinds.
// Exactly one of the kind-specific fields is non-nil, matching Kind.
type Analysis struct {
	Kind             AnalysisKind              `json:"kind"`
	GeneralBusiness  *GeneralBusinessAnalysis  `json:"general_business,omitempty"`
	CompetitiveIntel *CompetitiveIntelAnalysis `json:"competitive_intelligence,omitempty"`
	CustomerFeedback *CustomerFeedbackAnalysis `json:"customer_feedback,omitempty"`
}

type OutcomeErrorKind string

const (
	OutcomeEmptyDocument  OutcomeErrorKind = "empty_document"
	OutcomeAnalysisFailed OutcomeErrorKind = "analysis_failed"
)

// OutcomeError is the per-document failure descriptor inside a batch.
// It never aborts the batch.
type OutcomeError struct {
	Kind    OutcomeErrorKind `json:"kind"`
	Message string           `json:"message"`
}

func (e *OutcomeError) Error() string {
	if e == nil {
		return "analysis outcome error"
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Outcome is the per-document result of a batch run. Exactly one of
// Analysis and Err is populated.
type Outcome struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Analysis  *Analysis     `json:"analysis,omitempty"`
	Err       *OutcomeError `json:"error,omitempty"`
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// BatchEvent is emitted by the batch orchestrator after each document,
// with Completed strictly increasing from 1 to Total.
type BatchEvent struct {
	Outcome   Outcome `json:"outcome"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
}
