// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/draftwright/internal/completion"
	"github.com/meshintel/draftwright/internal/docs"
	"github.com/meshintel/draftwright/internal/search"
	"github.com/meshintel/draftwright/internal/workflow"
	"github.com/meshintel/draftwright/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Run the research pipeline once and print the draft",
	Long: `Research runs the full pipeline for one query: query optimization, web
research, claim extraction, claim verification, fact-check report, and
content drafting. The draft and its references are printed to stdout.

If documents have been indexed under the configured data directory, the
top-ranked chunks for the query are fed into the research and draft
prompts as additional context.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Int("style", 1, "content style: 1=blog post, 2=detailed report, 3=executive summary")
	researchCmd.Flags().String("output", "", "write the full pipeline state to a YAML file")
	researchCmd.Flags().Bool("json", false, "print the full pipeline state as JSON instead of the draft")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	style, _ := cmd.Flags().GetInt("style")
	if style < 1 || style > 3 {
		return fmt.Errorf("style must be 1, 2, or 3")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	engine := &workflow.Engine{
		Search:     search.NewTavilyClient(cfg.Search),
		Verifier:   search.NewTavilyClient(cfg.Verification),
		Completion: completion.NewGroqClient(cfg.Completion),
		Log:        logger,
	}

	st := types.ResearchState{
		Query:        args[0],
		ContentStyle: workflow.SelectContentStyle(style),
	}

	ctx := context.Background()
	if docCtx := documentContext(ctx, cfg.Docs, args[0], logger); docCtx != "" {
		st.PDFContext = docCtx
	}

	final, err := engine.Run(ctx, st)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		data, err := yaml.Marshal(final)
		if err != nil {
			return fmt.Errorf("marshaling state: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote pipeline state to %s\n", path)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(final)
	}

	fmt.Println(final.DraftContent)
	if len(final.References) > 0 {
		fmt.Println("\nReferences:")
		fmt.Println(strings.Join(final.References, "\n"))
	}
	return nil
}

// documentContext looks up retrieval context for the query when a document
// index exists. Absence of the index, or a lookup failure, yields no
// context rather than aborting the run.
func documentContext(ctx context.Context, cfg types.DocsConfig, query string, logger *zap.Logger) string {
	if _, err := os.Stat(cfg.DataDir); err != nil {
		return ""
	}
	store, err := docs.NewStore(cfg)
	if err != nil {
		logger.Warn("document index unavailable", zap.Error(err))
		return ""
	}
	defer store.Close()

	text, err := store.RelevantContext(ctx, query)
	if err != nil {
		logger.Warn("document context lookup failed", zap.Error(err))
		return ""
	}
	return text
}
