// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meshintel/draftwright/internal/httputil"
	"github.com/meshintel/draftwright/pkg/types"
)

// tavilyAPIBase is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

const (
	defaultMaxResults = 5
	defaultTimeout    = 30 * time.Second
)

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	cfg    types.SearchConfig
	client *http.Client
}

// NewTavilyClient builds a client from cfg, applying defaults for unset
// fields.
func NewTavilyClient(cfg types.SearchConfig) *TavilyClient {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Depth == "" {
		cfg.Depth = types.DepthBasic
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &TavilyClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// tavilyRequest is the request body for the Tavily search API.
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// tavilyResponse is the response envelope. Results is kept raw because the
// provider has been observed returning a bare string in place of the result
// array; decodeResults normalizes the shape.
type tavilyResponse struct {
	Results json.RawMessage `json:"results"`
}

// tavilyResult is one well-formed entry of the results array.
type tavilyResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Search queries Tavily and returns normalized results. A malformed results
// shape degrades to zero results rather than an error; only transport and
// HTTP-status failures are reported.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.cfg.APIKey,
		Query:       query,
		SearchDepth: string(c.cfg.Depth),
		MaxResults:  c.cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Tavily API returned HTTP %d: %s", resp.StatusCode, string(b))
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing Tavily response: %w", err)
	}

	return decodeResults(tr.Results), nil
}

// decodeResults normalizes the results payload. A well-formed array maps
// directly; a bare string becomes a single synthetic result; anything else
// yields zero results.
func decodeResults(raw json.RawMessage) []types.SearchResult {
	if len(raw) == 0 {
		return nil
	}

	var entries []tavilyResult
	if err := json.Unmarshal(raw, &entries); err == nil {
		results := make([]types.SearchResult, 0, len(entries))
		for _, e := range entries {
			results = append(results, types.SearchResult{
				URL:     e.URL,
				Title:   e.Title,
				Content: e.Content,
			})
		}
		return results
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []types.SearchResult{{
			URL:     "N/A",
			Title:   "Search Result",
			Content: s,
		}}
	}

	return nil
}
