// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/viper"

	"github.com/meshintel/draftwright/pkg/types"
)

func init() {
	viper.SetDefault("completion.model", "deepseek-r1-distill-llama-70b")
	viper.SetDefault("server.addr", ":5000")
	viper.SetDefault("library.data_dir", "data/library")
	viper.SetDefault("docs.data_dir", "data/docs")
	viper.SetDefault("verification.depth", string(types.DepthAdvanced))
	viper.SetDefault("verification.max_results", 5)
}

// loadConfig assembles the service configuration from the config file, the
// environment, and the secrets directory. Unset values fall back to each
// component's defaults.
func loadConfig() types.Config {
	cfg := types.Config{
		Search: types.SearchConfig{
			APIKey:     apiKey("search.api_key", "TAVILY_API_KEY", "tavily-api-key"),
			MaxResults: viper.GetInt("search.max_results"),
			Depth:      types.SearchDepth(viper.GetString("search.depth")),
		},
		Verification: types.SearchConfig{
			APIKey:     apiKey("verification.api_key", "TAVILY_API_KEY", "tavily-api-key"),
			MaxResults: viper.GetInt("verification.max_results"),
			Depth:      types.SearchDepth(viper.GetString("verification.depth")),
		},
		Completion: types.CompletionConfig{
			Model:     viper.GetString("completion.model"),
			APIKey:    apiKey("completion.api_key", "GROQ_API_KEY", "groq-api-key"),
			MaxTokens: viper.GetInt("completion.max_tokens"),
		},
		Jobs: types.JobsConfig{
			Workers:       viper.GetInt("jobs.workers"),
			QueueSize:     viper.GetInt("jobs.queue_size"),
			Retention:     viper.GetDuration("jobs.retention"),
			SweepInterval: viper.GetDuration("jobs.sweep_interval"),
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("server.addr"),
			CORSOrigins: viper.GetStringSlice("server.cors_origins"),
		},
		Library: types.LibraryConfig{
			DataDir: viper.GetString("library.data_dir"),
		},
		Docs: types.DocsConfig{
			DataDir:   viper.GetString("docs.data_dir"),
			ChunkSize: viper.GetInt("docs.chunk_size"),
			MaxChunks: viper.GetInt("docs.max_chunks"),
		},
	}
	cfg.Search.Timeout = viper.GetDuration("search.timeout")
	cfg.Verification.Timeout = viper.GetDuration("verification.timeout")
	cfg.Completion.Timeout = viper.GetDuration("completion.timeout")
	return cfg
}

// apiKey resolves a credential: config file first, then environment, then
// the secrets directory.
func apiKey(cfgKey, envVar, secretKey string) string {
	if v := viper.GetString(cfgKey); v != "" {
		return v
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return loadedSecrets[secretKey]
}
