// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/meshintel/draftwright/pkg/types"
)

// sourceURLPattern matches URL-bearing source lines inside formatted
// search-result blocks. Reference extraction recognizes only this exact
// layout; if the formatting convention changes, references silently go
// empty. Known limitation.
var sourceURLPattern = regexp.MustCompile(`Source: (https?://[^\n]+)`)

// FormatSources renders search results as "Source / Title / Content"
// blocks separated by blank lines. Empty fields fall back to markers so
// the block layout stays fixed.
func FormatSources(results []types.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		url := r.URL
		if url == "" {
			url = "Unknown"
		}
		title := r.Title
		if title == "" {
			title = "No title"
		}
		content := r.Content
		if content == "" {
			content = "No content"
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\nTitle: %s\nContent: %s", url, title, content))
	}
	return strings.Join(blocks, "\n\n")
}

// ExtractReferences scans the verification-data blocks of all results for
// source URLs and returns a numbered citation list. URLs are deduplicated
// by exact text and numbered in first-seen order starting at 1. The
// numbering is stable for the lifetime of the job.
func ExtractReferences(results []types.VerificationResult) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, r := range results {
		for _, m := range sourceURLPattern.FindAllStringSubmatch(r.VerificationData, -1) {
			url := m[1]
			if seen[url] {
				continue
			}
			seen[url] = true
			refs = append(refs, fmt.Sprintf("%d. %s", len(refs)+1, url))
		}
	}
	return refs
}
