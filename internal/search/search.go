// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search wraps the Tavily web search API behind a small client
// interface. The researcher and the claim verifier each hold their own
// client configured with a different depth and result count.
package search

import (
	"context"

	"github.com/meshintel/draftwright/pkg/types"
)

// Client searches the web for free text and returns ordered results.
// Implementations must tolerate the provider returning malformed shapes;
// the pipeline never sees anything but a (possibly empty) result slice.
type Client interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}
