// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meshintel/draftwright/pkg/types"
)

// generateReport synthesizes all verification results plus the reference
// list into one human-readable fact-check report. The bulky raw
// verification-data blocks are stripped before prompting; the report
// instruction does not need them. The report is opaque text, taken
// without validation. No local containment.
func (e *Engine) generateReport(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	cleaned := make([]types.VerificationResult, len(st.VerificationResults))
	for i, vr := range st.VerificationResults {
		vr.VerificationData = ""
		cleaned[i] = vr
	}

	resultsJSON, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return st, fmt.Errorf("encoding verification results: %w", err)
	}

	prompt, err := render(reportPromptTmpl, struct {
		ResearchOutput      string
		VerificationResults string
		References          string
	}{
		ResearchOutput:      st.ResearchOutput,
		VerificationResults: string(resultsJSON),
		References:          strings.Join(st.References, "\n"),
	})
	if err != nil {
		return st, fmt.Errorf("rendering report prompt: %w", err)
	}

	report, err := e.Completion.Complete(ctx, prompt)
	if err != nil {
		return st, fmt.Errorf("generating fact-check report: %w", err)
	}

	st.FactCheckReport = report
	return st, nil
}
