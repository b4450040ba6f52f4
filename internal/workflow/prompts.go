// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"bytes"
	"text/template"
)

// optimizePromptTmpl rewrites the user's raw query into a more specific,
// domain-aware one while preserving its intent.
var optimizePromptTmpl = template.Must(template.New("optimize").Parse(`You are a query optimization expert. Your task is to transform natural language queries into detailed, domain-specific optimized queries that can be processed by specialized systems.

Original query: {{.Query}}

Please provide an optimized version of this query that:
1. Is more specific and detailed
2. Includes relevant domain terminology
3. Is structured for better processing by downstream systems
4. Maintains the original intent of the query

Optimized query:
`))

// summarizePromptTmpl turns raw search result blocks into a structured
// research narrative. Context, when present, is retrieval context from
// uploaded documents.
var summarizePromptTmpl = template.Must(template.New("summarize").Parse(`You are a research assistant that summarizes and structures search results.

Given the following raw search results:

{{.SearchResults}}
{{if .Context}}
Additional context from the user's documents:

{{.Context}}
{{end}}
Please provide a well-structured summary that:
1. Extracts the key information
2. Organizes it in a clear, logical manner
3. Removes any redundant or irrelevant information
4. Cites sources appropriately
5. Presents a comprehensive overview of the topic

Your summary should be detailed enough to provide valuable insights on the query: {{.Query}}
`))

// extractClaimsPromptTmpl asks for the 3-5 most significant checkable
// claims as a JSON array of {claim, importance}.
var extractClaimsPromptTmpl = template.Must(template.New("extract_claims").Parse(`You are an expert at identifying factual claims in text.
From the following research output, extract the 3-5 most significant factual claims that should be verified.

Research output:
{{.ResearchOutput}}

For each claim, provide:
1. The claim statement
2. The importance of verifying this claim (high/medium/low)

Format your response as a JSON array of objects with "claim" and "importance" fields.
`))

// verifyClaimPromptTmpl scores one claim against independent search results.
var verifyClaimPromptTmpl = template.Must(template.New("verify_claim").Parse(`You are a critical fact-checker analyzing research content. Evaluate the following claim:

CLAIM: {{.Claim}}

Based on your analysis and the provided verification data:
{{.VerificationData}}

Please provide a detailed assessment with:
1. Accuracy score (0-10)
2. Confidence level (0-10)
3. Specific inaccuracies or misrepresentations (if any)
4. Missing context or nuance
5. Potential biases in the original claim

Format your response as a JSON object with the following structure:
{
    "accuracy_score": <score>,
    "confidence_level": <level>,
    "inaccuracies": ["<issue1>", "<issue2>", ...],
    "missing_context": ["<context1>", "<context2>", ...],
    "potential_biases": ["<bias1>", "<bias2>", ...],
    "corrected_claim": "<improved version of the claim>"
}
`))

// reportPromptTmpl synthesizes all verification results into one
// fact-check report citing references by number.
var reportPromptTmpl = template.Must(template.New("report").Parse(`You are a critical fact-checker generating a comprehensive verification report.

Original research output:
{{.ResearchOutput}}

Detailed verification results for key claims:
{{.VerificationResults}}

References used in verification:
{{.References}}

Please provide a comprehensive fact-check report that:
1. Summarizes the overall reliability of the research (with an overall score from 0-10)
2. Highlights the most significant accuracy issues
3. Provides context for any misleading or incomplete information
4. Suggests improvements to make the research more accurate and balanced
5. Includes a properly formatted "References" section at the end listing all sources used in verification

Your report should be detailed, fair, and constructive. Make sure to cite specific references by number when discussing claims.
`))

// draftPromptTmpl produces the final styled content about the subject
// matter only, ending with the references.
var draftPromptTmpl = template.Must(template.New("draft").Parse(`Based on the following research results, create a {{.Style}} content where you will draft info only about the query {{.OptimizedQuery}} and the research findings. Not about the process like fact checking query optimization just use the Research findings:
{{.Research}} and Fact-check report:
{{.FactCheck}} to generate this {{.Style}} based draft having the References:
{{.References}} at the end of the draft
{{if .Context}}You may also draw on this additional context from the user's documents:
{{.Context}}
{{end}}The content should be informative, engaging, and suitable for the target audience.

Style guidance: {{.StyleGuidance}}

Please structure the draft in a clear, engaging {{.Style}} format.
Do not include any <think> or </think> tags in your response.
`))

// render executes a prompt template with the given data.
func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
