// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/privacy-scan/internal/httputil"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// defaultEndpoint is the standard OpenAI chat-completions URL. Overridden
// via OracleConfig.Endpoint for Azure or self-hosted deployments.
const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIBackend calls an OpenAI-compatible chat-completions API.
type OpenAIBackend struct {
	Client *http.Client
	Config types.OracleConfig
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion request and returns the raw response
// text. Rate limiting and transient server errors are retried at the HTTP
// layer before surfacing here.
func (b *OpenAIBackend) Complete(ctx context.Context, req Request) (string, error) {
	endpoint := b.Config.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	body := chatRequest{
		Model:       b.Config.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding oracle request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating oracle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.Config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.Config.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, httpReq, b.Config.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle API returned HTTP %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("parsing oracle response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("oracle API error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("oracle response contained no choices")
	}

	return cr.Choices[0].Message.Content, nil
}
