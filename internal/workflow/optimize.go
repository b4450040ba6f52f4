// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"

	"github.com/meshintel/draftwright/pkg/types"
)

// optimizeQuery rewrites the raw query into a more specific, domain-aware
// one. The model's output is taken verbatim, without validation or retry;
// a completion failure propagates to the orchestrator.
func (e *Engine) optimizeQuery(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	prompt, err := render(optimizePromptTmpl, struct{ Query string }{st.Query})
	if err != nil {
		return st, fmt.Errorf("rendering optimization prompt: %w", err)
	}

	optimized, err := e.Completion.Complete(ctx, prompt)
	if err != nil {
		return st, fmt.Errorf("optimizing query: %w", err)
	}

	st.OptimizedQuery = optimized
	return st, nil
}
