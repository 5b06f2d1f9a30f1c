// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "privacy-scan/0.1 (+mailto:research@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OracleConfig holds shared settings for stages that call the language-model
// oracle. Every oracle call site receives this struct explicitly; there are
// no package-level API settings.
type OracleConfig struct {
	// Endpoint is the chat-completions URL of an OpenAI-compatible API.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model or deployment identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the oracle API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestDelay is the fixed pause between consecutive oracle calls
	// (default 1s), keeping batch runs under the provider's rate limits.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// HarvestConfig holds settings for the harvest stage.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// QueriesFile is the YAML file mapping domains to search queries
	// (default "config/queries.yaml").
	QueriesFile string `json:"queries_file" yaml:"queries_file"`

	// RawDir is the output directory for raw record batches
	// (default "data/raw").
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// Mailto is the contact email sent to the polite pools of both APIs.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PageDelay is the pause between pagination requests (default 300ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// MergeConfig holds settings for the corpus merge stage.
type MergeConfig struct {
	// RawDir is the directory scanned for {prefix}_{domain}.json batches.
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// ProcessedDir is the output directory for corpus snapshots
	// (default "data/processed").
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`
}

// ClassifyConfig holds settings for the oracle classification stages
// (relevance, domain, feature extraction and validation, attribute classes).
type ClassifyConfig struct {
	OracleConfig `yaml:",inline"`

	// ProcessedDir holds the stage input and output artifacts.
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`

	// Domains lists the valid domain labels for domain classification.
	// Derived from the harvest queries file when empty.
	Domains []string `json:"domains,omitempty" yaml:"domains,omitempty"`

	// VocabFile optionally overrides the built-in synonym vocabulary.
	VocabFile string `json:"vocab_file,omitempty" yaml:"vocab_file,omitempty"`
}

// SegmentConfig holds settings for the regulation clause stage.
type SegmentConfig struct {
	OracleConfig `yaml:",inline"`

	// PDFDir is the directory of authoritative regulation PDFs
	// (default "data/legal_texts").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// ProcessedDir is the output directory for clause artifacts.
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`

	// MaxSnippet is the per-passage character budget (default 450).
	MaxSnippet int `json:"max_snippet" yaml:"max_snippet"`
}

// MatchConfig holds settings for the feature-regulation match stage.
type MatchConfig struct {
	OracleConfig `yaml:",inline"`

	// ProcessedDir holds the stage input and output artifacts.
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`

	// Regulations is the ordered allow-list of regulation IDs kept for
	// validation. Defaults to the curated high-priority set.
	Regulations []string `json:"regulations,omitempty" yaml:"regulations,omitempty"`
}

// CorpusConfig holds settings for the corpus index stage.
type CorpusConfig struct {
	// IndexDir is the directory holding the SQLite database
	// (default "data/index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Harvest  HarvestConfig  `json:"harvest" yaml:"harvest"`
	Merge    MergeConfig    `json:"merge" yaml:"merge"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Segment  SegmentConfig  `json:"segment" yaml:"segment"`
	Match    MatchConfig    `json:"match" yaml:"match"`
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`
}
