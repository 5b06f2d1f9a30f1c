// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

const (
	defaultProcessedDir = "data/processed"
	defaultRawDir       = "data/raw"
	defaultModel        = "gpt-4o"
	defaultOracleDelay  = 1 * time.Second
)

// registerOracleFlags adds the flags shared by every oracle-backed stage.
func registerOracleFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", defaultModel, "oracle model or deployment identifier")
	cmd.Flags().String("endpoint", "", "chat-completions URL (default: the OpenAI API)")
	cmd.Flags().String("api-key", "", "oracle API key (default: .secrets/openai-api-key)")
	cmd.Flags().Int("max-retries", 3, "retry attempts for failed oracle calls")
	cmd.Flags().Duration("request-delay", defaultOracleDelay, "pause between consecutive oracle calls")
}

// oracleConfigFromFlags assembles the oracle settings from the shared flags,
// falling back to the loaded secrets for the API key.
func oracleConfigFromFlags(cmd *cobra.Command) types.OracleConfig {
	model, _ := cmd.Flags().GetString("model")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	apiKey, _ := cmd.Flags().GetString("api-key")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	delay, _ := cmd.Flags().GetDuration("request-delay")

	return types.OracleConfig{
		Endpoint:     endpoint,
		Model:        model,
		APIKey:       secretDefault("openai-api-key", apiKey),
		MaxRetries:   maxRetries,
		RequestDelay: delay,
	}
}

// newOracleBackend builds the production chat-completions backend. Oracle
// calls can be slow on long prompts, hence the generous timeout.
func newOracleBackend(cfg types.OracleConfig) *oracle.OpenAIBackend {
	return &oracle.OpenAIBackend{
		Client: &http.Client{Timeout: 120 * time.Second},
		Config: cfg,
	}
}
