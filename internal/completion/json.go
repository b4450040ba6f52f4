// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"fmt"
	"regexp"
	"strings"
)

// reasoningPattern matches paired internal-reasoning markup some models emit
// before their answer.
var reasoningPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// fencePattern matches Markdown code fences around a JSON payload.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON locates the JSON value inside model output. It strips
// reasoning markup and code fences, then returns the substring from the
// first opening bracket to the matching final bracket.
func ExtractJSON(text string) (string, error) {
	text = reasoningPattern.ReplaceAllString(text, "")
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", fmt.Errorf("no JSON value found in output")
	}

	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON value in output")
	}

	return text[start : end+1], nil
}
