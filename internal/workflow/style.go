// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

// Content styles the drafter can produce.
const (
	StyleBlogPost         = "blog post"
	StyleDetailedReport   = "detailed report"
	StyleExecutiveSummary = "executive summary"
)

// SelectContentStyle maps a numeric style selector to its content style.
// Unknown selectors default to a blog post; the function never fails.
func SelectContentStyle(n int) string {
	switch n {
	case 1:
		return StyleBlogPost
	case 2:
		return StyleDetailedReport
	case 3:
		return StyleExecutiveSummary
	default:
		return StyleBlogPost
	}
}

// styleGuidance returns the drafting instruction for a content style.
func styleGuidance(style string) string {
	switch style {
	case StyleDetailedReport:
		return "Structure a comprehensive report with executive summary, methodology, findings, analysis, and recommendations. Include relevant data points and cite sources appropriately."
	case StyleExecutiveSummary:
		return "Provide a concise executive summary highlighting key findings, implications, and recommended actions. Focus on business impact and strategic considerations."
	default:
		return "Create an engaging blog post that presents the research findings in a conversational tone with clear headings, examples, and actionable insights."
	}
}
