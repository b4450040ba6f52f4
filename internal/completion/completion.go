// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package completion wraps the language-model completion API behind a small
// client interface. Stages render their prompts with text/template and hand
// the finished prompt to the client; structured stages decode the model's
// JSON output through CompleteJSON.
package completion

import "context"

// Client generates text completions for rendered prompts. Implementations
// are expected to fail with an error on transport or quota problems; whether
// that failure is contained is the calling stage's decision.
type Client interface {
	// Complete returns the model's raw text output for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteJSON completes the prompt and unmarshals the model's output
	// into out. The payload may be wrapped in reasoning markup or code
	// fences; implementations must locate the JSON value inside it.
	CompleteJSON(ctx context.Context, prompt string, out any) error
}
