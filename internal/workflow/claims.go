// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/completion"
	"github.com/meshintel/draftwright/internal/metrics"
	"github.com/meshintel/draftwright/pkg/types"
)

// extractClaims identifies the 3-5 most significant checkable claims in
// the research narrative. The stage is contained: if the completion call
// or its JSON output fails, a single low-importance placeholder claim
// carrying the error text is substituted so downstream stages always have
// at least one claim to iterate.
func (e *Engine) extractClaims(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	claims, err := e.requestClaims(ctx, st.ResearchOutput)
	if err != nil {
		e.logger().Warn("claim extraction failed, continuing with placeholder", zap.Error(err))
		metrics.StageContained.WithLabelValues("extract_claims").Inc()
		claims = []types.Claim{{
			Claim:      fmt.Sprintf("Error extracting claims: %v", err),
			Importance: "low",
		}}
	}
	if len(claims) == 0 {
		claims = []types.Claim{{Claim: "No claims could be extracted", Importance: "low"}}
	}

	st.Claims = claims
	return st, nil
}

// requestClaims runs the extraction prompt and decodes the claim array.
// A single-object payload is wrapped into a one-element slice; any other
// shape mismatch is an error the caller substitutes for.
func (e *Engine) requestClaims(ctx context.Context, researchOutput string) ([]types.Claim, error) {
	prompt, err := render(extractClaimsPromptTmpl, struct{ ResearchOutput string }{researchOutput})
	if err != nil {
		return nil, fmt.Errorf("rendering extraction prompt: %w", err)
	}

	text, err := e.Completion.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := completion.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var claims []types.Claim
	if err := json.Unmarshal([]byte(payload), &claims); err == nil {
		return claims, nil
	}

	var single types.Claim
	if err := json.Unmarshal([]byte(payload), &single); err == nil && single.Claim != "" {
		return []types.Claim{single}, nil
	}

	return nil, fmt.Errorf("unexpected claim payload shape: %s", truncate(payload, 120))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
