// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshintel/draftwright/pkg/types"
)

func testGroq(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	old := groqAPIBase
	groqAPIBase = srv.URL
	t.Cleanup(func() { groqAPIBase = old })

	return NewGroqClient(types.CompletionConfig{
		Model:  "test-model",
		APIKey: "test-key",
	})
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestCompleteReturnsMessageContent(t *testing.T) {
	var gotAuth string
	var gotReq groqRequest
	c := testGroq(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, completionBody("optimized query text"))
	})

	got, err := c.Complete(context.Background(), "rewrite this query")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "optimized query text" {
		t.Errorf("Complete() = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 1 {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	c := testGroq(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("Complete() error = nil, want error for empty choices")
	}
}

func TestCompleteJSONUnwrapsReasoningAndFences(t *testing.T) {
	c := testGroq(t, func(w http.ResponseWriter, r *http.Request) {
		content := "<think>let me reason about this</think>\n```json\n[{\"claim\": \"X\", \"importance\": \"high\"}]\n```"
		fmt.Fprint(w, completionBody(content))
	})

	var claims []types.Claim
	if err := c.CompleteJSON(context.Background(), "extract", &claims); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if len(claims) != 1 || claims[0].Claim != "X" || claims[0].Importance != "high" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, false},
		{"bare array", `[1, 2]`, `[1, 2]`, false},
		{"leading prose", `Here is the result: {"a": 1}`, `{"a": 1}`, false},
		{"think wrapped", "<think>hmm</think>{\"a\": 1}", `{"a": 1}`, false},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`, false},
		{"no json", "sorry, I cannot answer", "", true},
		{"unterminated", `{"a": 1`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
