// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data and configuration types used across
// the pipeline stages, the job manager, and the HTTP service.
package types

import "time"

// JobStatus is the lifecycle state of a research job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusError      JobStatus = "error"
)

// Terminal reports whether the status is final. A job reaches a terminal
// status exactly once and is never updated afterwards.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// SearchResult is one result from the web search provider.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Claim is a single checkable factual assertion extracted from the research
// narrative, tagged with how important it is to verify.
type Claim struct {
	Claim      string `json:"claim"`
	Importance string `json:"importance"`
}

// VerificationResult is the fact-checker's structured assessment of one Claim.
// VerificationData holds the raw formatted search results the assessment was
// based on; it is bulky and stripped before re-prompting.
type VerificationResult struct {
	Claim            string   `json:"claim"`
	Importance       string   `json:"importance"`
	AccuracyScore    float64  `json:"accuracy_score"`
	ConfidenceLevel  float64  `json:"confidence_level"`
	Inaccuracies     []string `json:"inaccuracies"`
	MissingContext   []string `json:"missing_context"`
	PotentialBiases  []string `json:"potential_biases"`
	CorrectedClaim   string   `json:"corrected_claim"`
	VerificationData string   `json:"verification_data,omitempty"`
}

// ResearchState is the accumulated state of the six-stage pipeline. Fields
// are monotonically appended: each is written by exactly one stage and never
// revised by a later one.
type ResearchState struct {
	Query        string `json:"query" yaml:"query"`
	ContentStyle string `json:"content_style" yaml:"content_style"`

	// PDFContext is optional retrieval context from uploaded documents,
	// consumed by the research and draft prompts.
	PDFContext string `json:"pdf_context,omitempty" yaml:"pdf_context,omitempty"`

	OptimizedQuery      string               `json:"optimized_query" yaml:"optimized_query"`
	ResearchOutput      string               `json:"research_output" yaml:"research_output"`
	Claims              []Claim              `json:"claims" yaml:"claims"`
	VerificationResults []VerificationResult `json:"verification_results" yaml:"verification_results"`
	References          []string             `json:"references" yaml:"references"`
	FactCheckReport     string               `json:"fact_check_report" yaml:"fact_check_report"`
	DraftContent        string               `json:"draft_content" yaml:"draft_content"`
}

// ResearchJob is one submitted research request: its pipeline state plus the
// bookkeeping the HTTP layer reports. Jobs live in process memory only.
type ResearchJob struct {
	ID string `json:"research_id"`
	ResearchState
	Status JobStatus `json:"status"`

	CreatedAt           time.Time `json:"created_at"`
	ProcessingStartedAt time.Time `json:"processing_started,omitzero"`
	CompletedAt         time.Time `json:"completed_at,omitzero"`
	ErrorAt             time.Time `json:"error_at,omitzero"`

	// Error is set only when Status is StatusError.
	Error string `json:"error,omitempty"`
}

// TerminalAt returns the timestamp at which the job reached a terminal
// status, or the zero time if it has not.
func (j *ResearchJob) TerminalAt() time.Time {
	if !j.CompletedAt.IsZero() {
		return j.CompletedAt
	}
	return j.ErrorAt
}
