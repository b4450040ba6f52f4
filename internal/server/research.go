// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meshintel/draftwright/pkg/types"
)

type startResearchRequest struct {
	Query string `json:"query"`
	Style *int   `json:"style"`
}

func (s *Server) startResearch(c *gin.Context) {
	var req startResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: query"})
		return
	}
	style := 1
	if req.Style != nil {
		style = *req.Style
	}
	if style < 1 || style > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Style number must be between 1 and 3"})
		return
	}

	job, err := s.jobs.Submit(req.Query, style)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"message":         "Research initiated successfully",
		"research_id":     job.ID,
		"research_status": job.Status,
		"created_at":      job.CreatedAt,
	})
}

func (s *Server) researchResults(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research ID not found"})
		return
	}

	switch job.Status {
	case types.StatusQueued, types.StatusProcessing:
		c.JSON(http.StatusOK, gin.H{
			"research_id":        job.ID,
			"status":             job.Status,
			"message":            "Research is still in progress",
			"created_at":         job.CreatedAt,
			"processing_started": timeOrEmpty(job.ProcessingStartedAt),
			"query":              job.Query,
			"content_style":      job.ContentStyle,
		})
	case types.StatusError:
		c.JSON(http.StatusOK, gin.H{
			"research_id":   job.ID,
			"status":        job.Status,
			"message":       "An error occurred during research",
			"error":         job.Error,
			"created_at":    job.CreatedAt,
			"error_at":      timeOrEmpty(job.ErrorAt),
			"query":         job.Query,
			"content_style": job.ContentStyle,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"research_id":  job.ID,
			"status":       job.Status,
			"created_at":   job.CreatedAt,
			"completed_at": timeOrEmpty(job.CompletedAt),
			"query": gin.H{
				"original":  job.Query,
				"optimized": job.OptimizedQuery,
			},
			"research_output": job.ResearchOutput,
			"fact_check": gin.H{
				"report":               job.FactCheckReport,
				"verification_results": emptyIfNilVerifications(job.VerificationResults),
			},
			"content": gin.H{
				"style": job.ContentStyle,
				"draft": job.DraftContent,
			},
			"references": emptyIfNil(job.References),
		})
	}
}

// timeOrEmpty renders zero timestamps as "" so polling clients see a
// stable shape before the field is set.
func timeOrEmpty(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilVerifications(s []types.VerificationResult) []types.VerificationResult {
	if s == nil {
		return []types.VerificationResult{}
	}
	return s
}
