// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/meshintel/draftwright/pkg/types"
)

// thinkPattern matches delimited internal-reasoning markup some models
// embed in their output.
var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// draftContent produces the final styled content from the research
// narrative, fact-check report, and references, then strips any
// internal-reasoning markup from the result. The caller never sees that
// markup regardless of what the model emits. No local containment.
func (e *Engine) draftContent(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	prompt, err := render(draftPromptTmpl, struct {
		Style          string
		StyleGuidance  string
		OptimizedQuery string
		Research       string
		FactCheck      string
		References     string
		Context        string
	}{
		Style:          st.ContentStyle,
		StyleGuidance:  styleGuidance(st.ContentStyle),
		OptimizedQuery: st.OptimizedQuery,
		Research:       st.ResearchOutput,
		FactCheck:      st.FactCheckReport,
		References:     strings.Join(st.References, "\n"),
		Context:        st.PDFContext,
	})
	if err != nil {
		return st, fmt.Errorf("rendering draft prompt: %w", err)
	}

	draft, err := e.Completion.Complete(ctx, prompt)
	if err != nil {
		return st, fmt.Errorf("drafting content: %w", err)
	}

	st.DraftContent = StripReasoning(draft)
	return st, nil
}

// StripReasoning removes all delimited internal-reasoning spans from
// model output.
func StripReasoning(s string) string {
	return thinkPattern.ReplaceAllString(s, "")
}
