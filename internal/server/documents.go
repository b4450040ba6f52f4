// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/docs"
)

type addDocumentRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (s *Server) addDocument(c *gin.Context) {
	if s.docs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document store is not configured"})
		return
	}

	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: name"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: text"})
		return
	}

	doc, err := s.docs.AddDocument(c.Request.Context(), req.Name, req.Text)
	if err != nil {
		s.log.Error("document indexing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Document indexed successfully",
		"document_id": doc.DocumentID,
		"chunks":      doc.Chunks,
	})
}

func (s *Server) listDocuments(c *gin.Context) {
	if s.docs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document store is not configured"})
		return
	}

	documents, err := s.docs.List(c.Request.Context())
	if err != nil {
		s.log.Error("document listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(documents), "documents": documents})
}

func (s *Server) deleteDocument(c *gin.Context) {
	if s.docs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document store is not configured"})
		return
	}

	err := s.docs.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, docs.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document ID not found"})
		return
	}
	if err != nil {
		s.log.Error("document deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Document deleted successfully",
	})
}
