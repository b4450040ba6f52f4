// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshintel/draftwright/pkg/types"
)

func testClient(t *testing.T, handler http.HandlerFunc) *TavilyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	old := tavilyAPIBase
	tavilyAPIBase = srv.URL
	t.Cleanup(func() { tavilyAPIBase = old })

	return NewTavilyClient(types.SearchConfig{
		APIKey:     "test-key",
		MaxResults: 5,
		Depth:      types.DepthAdvanced,
	})
}

func TestSearchDecodesResults(t *testing.T) {
	var gotReq tavilyRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"results": [
			{"url": "https://example.com/a", "title": "A", "content": "alpha"},
			{"url": "https://example.com/b", "title": "B", "content": "beta"}
		]}`))
	})

	results, err := c.Search(context.Background(), "remote work productivity")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].URL != "https://example.com/a" || results[0].Content != "alpha" {
		t.Errorf("results[0] = %+v", results[0])
	}

	if gotReq.Query != "remote work productivity" {
		t.Errorf("request query = %q", gotReq.Query)
	}
	if gotReq.SearchDepth != "advanced" || gotReq.MaxResults != 5 {
		t.Errorf("request depth/max = %q/%d", gotReq.SearchDepth, gotReq.MaxResults)
	}
}

func TestSearchNormalizesBareString(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": "no results found"}`))
	})

	results, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 synthetic result", len(results))
	}
	if results[0].URL != "N/A" || results[0].Content != "no results found" {
		t.Errorf("synthetic result = %+v", results[0])
	}
}

func TestSearchUnexpectedShapeYieldsZeroResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": 42}`))
	})

	results, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearchHTTPErrorPropagates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() error = nil, want HTTP error")
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	c := NewTavilyClient(types.SearchConfig{})
	if _, err := c.Search(context.Background(), ""); err == nil {
		t.Fatal("Search(\"\") error = nil, want error")
	}
}
