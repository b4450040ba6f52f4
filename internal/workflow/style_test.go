// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import "testing"

func TestSelectContentStyle(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "blog post"},
		{2, "detailed report"},
		{3, "executive summary"},
		{0, "blog post"},
		{4, "blog post"},
		{99, "blog post"},
		{-1, "blog post"},
	}
	for _, tt := range tests {
		if got := SelectContentStyle(tt.n); got != tt.want {
			t.Errorf("SelectContentStyle(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestStyleGuidanceCoversAllStyles(t *testing.T) {
	for _, style := range []string{StyleBlogPost, StyleDetailedReport, StyleExecutiveSummary} {
		if styleGuidance(style) == "" {
			t.Errorf("styleGuidance(%q) is empty", style)
		}
	}
	// Unknown styles fall back to blog post guidance.
	if styleGuidance("haiku") != styleGuidance(StyleBlogPost) {
		t.Error("unknown style should use blog post guidance")
	}
}
