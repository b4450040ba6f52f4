// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meshintel/draftwright/pkg/types"
)

// verifyClaims checks each extracted claim against an independent,
// deeper search and scores it, then builds the deduplicated reference
// list from the sources touched along the way. Claims are verified
// strictly sequentially; the list is small by construction. This stage
// has no local containment: a search or completion failure aborts the
// job through the orchestrator's top-level handler.
func (e *Engine) verifyClaims(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	results := make([]types.VerificationResult, 0, len(st.Claims))

	for _, claim := range st.Claims {
		e.logger().Debug("verifying claim", zap.String("claim", truncate(claim.Claim, 80)))

		vr, err := e.verifyClaim(ctx, claim)
		if err != nil {
			return st, err
		}
		results = append(results, vr)
	}

	st.VerificationResults = results
	st.References = ExtractReferences(results)
	return st, nil
}

// verifyClaim runs the verification search and rubric prompt for one
// claim, attaching the original claim, its importance, and the raw
// verification-data block onto the structured result.
func (e *Engine) verifyClaim(ctx context.Context, claim types.Claim) (types.VerificationResult, error) {
	hits, err := e.Verifier.Search(ctx, claim.Claim)
	if err != nil {
		return types.VerificationResult{}, fmt.Errorf("verification search: %w", err)
	}

	data := FormatSources(hits)

	prompt, err := render(verifyClaimPromptTmpl, struct {
		Claim            string
		VerificationData string
	}{claim.Claim, data})
	if err != nil {
		return types.VerificationResult{}, fmt.Errorf("rendering verification prompt: %w", err)
	}

	var vr types.VerificationResult
	if err := e.Completion.CompleteJSON(ctx, prompt, &vr); err != nil {
		return types.VerificationResult{}, fmt.Errorf("scoring claim: %w", err)
	}

	vr.Claim = claim.Claim
	vr.Importance = claim.Importance
	vr.VerificationData = data
	return vr, nil
}
