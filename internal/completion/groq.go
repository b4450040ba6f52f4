// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

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

// groqAPIBase is the Groq chat completions endpoint (OpenAI-compatible).
// Package-level var for test substitution.
var groqAPIBase = "https://api.groq.com/openai/v1/chat/completions"

const (
	defaultMaxTokens = 4096
	defaultTimeout   = 120 * time.Second
)

// GroqClient calls the Groq chat completions API.
type GroqClient struct {
	cfg    types.CompletionConfig
	client *http.Client
}

// NewGroqClient builds a client from cfg, applying defaults for unset fields.
func NewGroqClient(cfg types.CompletionConfig) *GroqClient {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GroqClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// groqRequest is the request body for the chat completions API.
type groqRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []groqMessage `json:"messages"`
}

// groqMessage is a single message in the conversation.
type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// groqResponse is the response body from the chat completions API.
type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the model's
// text output verbatim.
func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := groqRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []groqMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIBase, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API returned HTTP %d: %s", resp.StatusCode, string(b))
	}

	var gr groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(gr.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return gr.Choices[0].Message.Content, nil
}

// CompleteJSON completes the prompt and unmarshals the JSON value embedded
// in the output into out.
func (c *GroqClient) CompleteJSON(ctx context.Context, prompt string, out any) error {
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	payload, err := ExtractJSON(text)
	if err != nil {
		return fmt.Errorf("locating JSON in completion output: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("parsing completion JSON: %w", err)
	}
	return nil
}
