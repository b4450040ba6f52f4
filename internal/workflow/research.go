// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/metrics"
	"github.com/meshintel/draftwright/pkg/types"
)

// conductResearch searches the web for the optimized query and summarizes
// the results into a research narrative. Both the search and the
// summarization are contained: on failure the narrative degrades to a
// placeholder embedding the error, and the stage never raises past its
// boundary. The pipeline always has some research output to work with.
func (e *Engine) conductResearch(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	results, err := e.Search.Search(ctx, st.OptimizedQuery)
	if err != nil {
		e.logger().Warn("research search failed, continuing with placeholder", zap.Error(err))
		metrics.StageContained.WithLabelValues("conduct_research").Inc()
		st.ResearchOutput = fmt.Sprintf("Research could not be completed due to an error: %v", err)
		return st, nil
	}

	prompt, err := render(summarizePromptTmpl, struct {
		Query         string
		SearchResults string
		Context       string
	}{
		Query:         st.OptimizedQuery,
		SearchResults: FormatSources(results),
		Context:       st.PDFContext,
	})
	if err != nil {
		return st, fmt.Errorf("rendering summarization prompt: %w", err)
	}

	summary, err := e.Completion.Complete(ctx, prompt)
	if err != nil {
		e.logger().Warn("summarization failed, continuing with placeholder", zap.Error(err))
		metrics.StageContained.WithLabelValues("conduct_research").Inc()
		st.ResearchOutput = fmt.Sprintf("Could not summarize search results due to an error: %v", err)
		return st, nil
	}

	st.ResearchOutput = summary
	return st, nil
}
