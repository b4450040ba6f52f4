// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "draftwright/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchDepth selects the search provider's effort level.
type SearchDepth string

const (
	DepthBasic    SearchDepth = "basic"
	DepthAdvanced SearchDepth = "advanced"
)

// SearchConfig holds settings for one configuration of the web search
// client. The researcher and the claim verifier use distinct
// configurations: verification searches run at advanced depth.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the Tavily API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the number of results requested per search (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Depth is the search depth: basic or advanced.
	Depth SearchDepth `json:"depth" yaml:"depth"`
}

// CompletionConfig holds settings for the language-model completion client.
type CompletionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the model identifier (e.g. "deepseek-r1-distill-llama-70b").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// JobsConfig holds settings for the in-memory job manager.
type JobsConfig struct {
	// Workers is the size of the worker pool running pipelines (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// QueueSize is the submission queue capacity (default 64).
	QueueSize int `json:"queue_size" yaml:"queue_size"`

	// Retention is how long terminal jobs are kept in memory (default 24h).
	Retention time.Duration `json:"retention" yaml:"retention"`

	// SweepInterval is how often expired jobs are swept (default 1h).
	SweepInterval time.Duration `json:"sweep_interval" yaml:"sweep_interval"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// CORSOrigins lists allowed CORS origins. "*" allows all.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`
}

// LibraryConfig holds settings for the draft/playlist library database.
type LibraryConfig struct {
	// DataDir is the directory holding the library SQLite database.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// DocsConfig holds settings for the document context index.
type DocsConfig struct {
	// DataDir is the directory holding the document SQLite index.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ChunkSize is the target chunk length in characters (default 1200).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// MaxChunks is the number of top-ranked chunks returned as context
	// (default 4).
	MaxChunks int `json:"max_chunks" yaml:"max_chunks"`
}

// Config groups all component configurations for the service.
type Config struct {
	Search       SearchConfig     `json:"search" yaml:"search"`
	Verification SearchConfig     `json:"verification" yaml:"verification"`
	Completion   CompletionConfig `json:"completion" yaml:"completion"`
	Jobs         JobsConfig       `json:"jobs" yaml:"jobs"`
	Server       ServerConfig     `json:"server" yaml:"server"`
	Library      LibraryConfig    `json:"library" yaml:"library"`
	Docs         DocsConfig       `json:"docs" yaml:"docs"`
}
