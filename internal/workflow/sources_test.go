// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"strings"
	"testing"

	"github.com/meshintel/draftwright/pkg/types"
)

func TestFormatSources(t *testing.T) {
	results := []types.SearchResult{
		{URL: "https://example.com/a", Title: "Alpha", Content: "first"},
		{URL: "", Title: "", Content: ""},
	}

	got := FormatSources(results)

	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0] != "Source: https://example.com/a\nTitle: Alpha\nContent: first" {
		t.Errorf("block[0] = %q", blocks[0])
	}
	if blocks[1] != "Source: Unknown\nTitle: No title\nContent: No content" {
		t.Errorf("block[1] = %q", blocks[1])
	}
}

func TestFormatSourcesEmpty(t *testing.T) {
	if got := FormatSources(nil); got != "" {
		t.Errorf("FormatSources(nil) = %q, want empty", got)
	}
}

func TestExtractReferencesDeduplicatesAcrossClaims(t *testing.T) {
	results := []types.VerificationResult{
		{VerificationData: "Source: https://example.com/a\nTitle: A\nContent: x\n\nSource: https://example.com/b\nTitle: B\nContent: y"},
		{VerificationData: "Source: https://example.com/b\nTitle: B again\nContent: z\n\nSource: https://example.com/c\nTitle: C\nContent: w"},
	}

	refs := ExtractReferences(results)

	want := []string{
		"1. https://example.com/a",
		"2. https://example.com/b",
		"3. https://example.com/c",
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d references, want %d: %v", len(refs), len(want), refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i], want[i])
		}
	}
}

func TestExtractReferencesIgnoresNonHTTPSources(t *testing.T) {
	results := []types.VerificationResult{
		{VerificationData: "Source: Unknown\nTitle: t\nContent: c"},
	}
	if refs := ExtractReferences(results); len(refs) != 0 {
		t.Errorf("got %v, want no references", refs)
	}
}

func TestExtractReferencesEmptyData(t *testing.T) {
	if refs := ExtractReferences(nil); len(refs) != 0 {
		t.Errorf("got %v, want no references", refs)
	}
}
