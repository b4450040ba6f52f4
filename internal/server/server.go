// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the research service over HTTP: job submission
// and polling, the draft library, and the document index.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meshintel/draftwright/pkg/types"
)

// JobService is the job-manager surface the HTTP layer needs.
type JobService interface {
	Submit(query string, styleNumber int) (types.ResearchJob, error)
	Get(id string) (types.ResearchJob, bool)
}

// Library is the draft/playlist persistence surface.
type Library interface {
	SaveDraft(ctx context.Context, job types.ResearchJob, title string, tags []string) (types.Draft, error)
	ListDrafts(ctx context.Context, tag string) ([]types.Draft, error)
	GetDraft(ctx context.Context, id string) (types.Draft, error)
	UpdateDraft(ctx context.Context, id string, title *string, tags []string) (types.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	Tags(ctx context.Context) ([]string, error)

	CreatePlaylist(ctx context.Context, name, description string, draftIDs []string) (types.Playlist, error)
	ListPlaylists(ctx context.Context) ([]types.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (types.Playlist, error)
	AddDrafts(ctx context.Context, playlistID string, draftIDs []string) (added, total int, err error)
	RemoveDraft(ctx context.Context, playlistID, draftID string) (total int, err error)
	DeletePlaylist(ctx context.Context, id string) error
}

// DocumentStore is the document-index surface. It may be nil when no
// document store is configured; the document routes then return 503.
type DocumentStore interface {
	AddDocument(ctx context.Context, name, text string) (types.Document, error)
	List(ctx context.Context) ([]types.Document, error)
	Delete(ctx context.Context, id string) error
}

// Server is the HTTP front end.
type Server struct {
	cfg  types.ServerConfig
	jobs JobService
	lib  Library
	docs DocumentStore
	log  *zap.Logger

	http *http.Server
}

// New builds the server and its router.
func New(cfg types.ServerConfig, jobs JobService, lib Library, docs DocumentStore, log *zap.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, jobs: jobs, lib: lib, docs: docs, log: log}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(cors.New(corsConfig(s.cfg.CORSOrigins)))
	router.Use(requestLogger(s.log))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	research := router.Group("/research")
	research.POST("/start", s.startResearch)
	research.GET("/results/:id", s.researchResults)

	library := router.Group("/library")
	library.POST("/save-draft", s.saveDraft)
	library.GET("/drafts", s.listDrafts)
	library.GET("/drafts/:id", s.getDraft)
	library.PUT("/drafts/:id", s.updateDraft)
	library.DELETE("/drafts/:id", s.deleteDraft)
	library.GET("/tags", s.listTags)
	library.GET("/playlists", s.listPlaylists)
	library.POST("/playlists", s.createPlaylist)
	library.GET("/playlists/:id", s.getPlaylist)
	library.DELETE("/playlists/:id", s.deletePlaylist)
	library.POST("/playlists/:id/drafts", s.addPlaylistDrafts)
	library.DELETE("/playlists/:id/drafts/:draft_id", s.removePlaylistDraft)

	documents := router.Group("/documents")
	documents.POST("", s.addDocument)
	documents.GET("", s.listDocuments)
	documents.DELETE("/:id", s.deleteDocument)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
