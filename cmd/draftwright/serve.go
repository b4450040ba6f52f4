// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meshintel/draftwright/internal/completion"
	"github.com/meshintel/draftwright/internal/docs"
	"github.com/meshintel/draftwright/internal/jobs"
	"github.com/meshintel/draftwright/internal/library"
	"github.com/meshintel/draftwright/internal/search"
	"github.com/meshintel/draftwright/internal/server"
	"github.com/meshintel/draftwright/internal/workflow"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the research service HTTP API",
	Long: `Serve starts the HTTP service: research jobs are submitted with
POST /research/start and polled with GET /research/results/{id}; completed
drafts can be saved into the library and organized into playlists; uploaded
document text feeds retrieval context into the pipeline.

Expired jobs are swept from memory periodically. The library and the
document index are persisted under the configured data directories.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().Int("workers", 0, "research worker pool size (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Jobs.Workers = workers
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Search.APIKey == "" {
		logger.Warn("no Tavily API key configured; research searches will fail")
	}
	if cfg.Completion.APIKey == "" {
		logger.Warn("no Groq API key configured; completions will fail")
	}

	engine := &workflow.Engine{
		Search:     search.NewTavilyClient(cfg.Search),
		Verifier:   search.NewTavilyClient(cfg.Verification),
		Completion: completion.NewGroqClient(cfg.Completion),
		Log:        logger,
	}

	lib, err := library.NewStore(cfg.Library)
	if err != nil {
		return fmt.Errorf("opening library: %w", err)
	}
	defer lib.Close()

	docStore, err := docs.NewStore(cfg.Docs)
	if err != nil {
		return fmt.Errorf("opening document index: %w", err)
	}
	defer docStore.Close()

	store := jobs.NewMemoryStore()
	manager := jobs.NewManager(cfg.Jobs, store, engine, docStore, logger)
	manager.Start()
	defer manager.Stop()

	srv := server.New(cfg.Server, manager, lib, docStore, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return manager.SweepLoop(ctx) })

	logger.Info("service started",
		zap.String("addr", cfg.Server.Addr),
		zap.String("model", cfg.Completion.Model),
		zap.String("config", viper.ConfigFileUsed()),
	)

	return g.Wait()
}
