// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow implements the six-stage research pipeline: query
// optimization, web research, claim extraction, claim verification,
// fact-check reporting, and content drafting.
//
// Stages run strictly in order. Each stage receives the accumulated state
// by value and returns an augmented copy in which it has set only its own
// output fields; fields written by earlier stages are never revised. A
// stage either contains its failures locally, substituting a placeholder
// value so the pipeline can keep producing a best-effort result, or lets
// the error propagate to Run's caller, which marks the job failed.
package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/completion"
	"github.com/meshintel/draftwright/internal/metrics"
	"github.com/meshintel/draftwright/internal/search"
	"github.com/meshintel/draftwright/pkg/types"
)

// Engine wires the pipeline stages to their external collaborators.
// Search serves the researcher; Verifier is a separate, deeper search
// configuration used for claim verification.
type Engine struct {
	Search     search.Client
	Verifier   search.Client
	Completion completion.Client
	Log        *zap.Logger
}

// stage is one pipeline step: a name for logs and metrics plus the
// function that advances the state.
type stage struct {
	name string
	run  func(ctx context.Context, st types.ResearchState) (types.ResearchState, error)
}

// stages returns the fixed pipeline order.
func (e *Engine) stages() []stage {
	return []stage{
		{"optimize_query", e.optimizeQuery},
		{"conduct_research", e.conductResearch},
		{"extract_claims", e.extractClaims},
		{"verify_claims", e.verifyClaims},
		{"generate_report", e.generateReport},
		{"draft_content", e.draftContent},
	}
}

// Run executes the pipeline over the initial state and returns the final
// accumulated state. It blocks until every stage has finished or one has
// failed; on failure the state accumulated so far is returned alongside
// the error, and no later stage executes.
func (e *Engine) Run(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	log := e.logger()
	log.Info("starting research workflow", zap.String("query", st.Query), zap.String("style", st.ContentStyle))

	for _, s := range e.stages() {
		start := time.Now()
		next, err := s.run(ctx, st)
		metrics.StageDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.StageFailures.WithLabelValues(s.name).Inc()
			log.Error("stage failed", zap.String("stage", s.name), zap.Error(err))
			return st, fmt.Errorf("%s: %w", s.name, err)
		}
		st = next
		log.Debug("stage complete", zap.String("stage", s.name), zap.Duration("took", time.Since(start)))
	}

	return st, nil
}

func (e *Engine) logger() *zap.Logger {
	if e.Log != nil {
		return e.Log
	}
	return zap.NewNop()
}
