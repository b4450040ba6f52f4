// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/library"
	"github.com/meshintel/draftwright/pkg/types"
)

type saveDraftRequest struct {
	ResearchID string   `json:"research_id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
}

func (s *Server) saveDraft(c *gin.Context) {
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if req.ResearchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: research_id"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: title"})
		return
	}

	job, ok := s.jobs.Get(req.ResearchID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research ID not found"})
		return
	}
	if job.Status != types.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Research is not completed yet"})
		return
	}

	draft, err := s.lib.SaveDraft(c.Request.Context(), job, req.Title, req.Tags)
	if err != nil {
		s.databaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Draft saved to library successfully",
		"draft_id": draft.DraftID,
	})
}

func (s *Server) listDrafts(c *gin.Context) {
	drafts, err := s.lib.ListDrafts(c.Request.Context(), c.Query("tag"))
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(drafts), "drafts": drafts})
}

func (s *Server) getDraft(c *gin.Context) {
	draft, err := s.lib.GetDraft(c.Request.Context(), c.Param("id"))
	if errors.Is(err, library.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft ID not found"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

type updateDraftRequest struct {
	Title *string   `json:"title"`
	Tags  *[]string `json:"tags"`
}

func (s *Server) updateDraft(c *gin.Context) {
	var req updateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}

	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
		if tags == nil {
			tags = []string{}
		}
	}

	draft, err := s.lib.UpdateDraft(c.Request.Context(), c.Param("id"), req.Title, tags)
	if errors.Is(err, library.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft ID not found"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Draft updated successfully",
		"draft":   draft,
	})
}

func (s *Server) deleteDraft(c *gin.Context) {
	err := s.lib.DeleteDraft(c.Request.Context(), c.Param("id"))
	if errors.Is(err, library.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft ID not found"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Draft deleted successfully",
	})
}

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.lib.Tags(c.Request.Context())
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tags), "tags": tags})
}

func (s *Server) listPlaylists(c *gin.Context) {
	playlists, err := s.lib.ListPlaylists(c.Request.Context())
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(playlists), "playlists": playlists})
}

type createPlaylistRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DraftIDs    []string `json:"draft_ids"`
}

func (s *Server) createPlaylist(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: name"})
		return
	}

	playlist, err := s.lib.CreatePlaylist(c.Request.Context(), req.Name, req.Description, req.DraftIDs)
	var invalid *library.InvalidDraftsError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Some draft IDs are invalid",
			"invalid_drafts": invalid.IDs,
		})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Playlist created successfully",
		"playlist_id": playlist.PlaylistID,
	})
}

func (s *Server) getPlaylist(c *gin.Context) {
	playlist, err := s.lib.GetPlaylist(c.Request.Context(), c.Param("id"))
	if errors.Is(err, library.ErrPlaylistNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist ID not found"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (s *Server) deletePlaylist(c *gin.Context) {
	err := s.lib.DeletePlaylist(c.Request.Context(), c.Param("id"))
	if errors.Is(err, library.ErrPlaylistNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist ID not found"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Playlist deleted successfully",
	})
}

type addDraftsRequest struct {
	DraftIDs []string `json:"draft_ids"`
}

func (s *Server) addPlaylistDrafts(c *gin.Context) {
	var req addDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if len(req.DraftIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: draft_ids"})
		return
	}

	added, total, err := s.lib.AddDrafts(c.Request.Context(), c.Param("id"), req.DraftIDs)
	if errors.Is(err, library.ErrPlaylistNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist ID not found"})
		return
	}
	var invalid *library.InvalidDraftsError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Some draft IDs are invalid",
			"invalid_drafts": invalid.IDs,
		})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     fmt.Sprintf("Added %d drafts to playlist", added),
		"playlist_id": c.Param("id"),
		"draft_count": total,
	})
}

func (s *Server) removePlaylistDraft(c *gin.Context) {
	total, err := s.lib.RemoveDraft(c.Request.Context(), c.Param("id"), c.Param("draft_id"))
	if errors.Is(err, library.ErrNotInPlaylist) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft is not in this playlist"})
		return
	}
	if err != nil {
		s.databaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Draft removed from playlist",
		"playlist_id": c.Param("id"),
		"draft_count": total,
	})
}

func (s *Server) databaseError(c *gin.Context, err error) {
	s.log.Error("library operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
}
