// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// togetherAPIURL is the Together chat completions endpoint. Package-level
// var for test substitution.
var togetherAPIURL = "https://api.together.xyz/v1/chat/completions"

const (
	defaultTogetherModel = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	defaultTemperature   = 0.7
	defaultModelTimeout  = 120 * time.Second
	maxCompletionTokens  = 4096
)

// TogetherBackend calls the Together AI chat completions API.
type TogetherBackend struct {
	cfg    types.ModelConfig
	client *http.Client
}

// NewTogetherBackend builds a backend from cfg, applying defaults for model,
// temperature, and timeout. The timeout and retry count live on the backend;
// individual calls do not override them.
func NewTogetherBackend(cfg types.ModelConfig) *TogetherBackend {
	if cfg.Model == "" {
		cfg.Model = defaultTogetherModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultModelTimeout
	}
	return &TogetherBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// togetherRequest is the request body for the chat completions API.
type togetherRequest struct {
	Model       string            `json:"model"`
	Messages    []togetherMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

// togetherMessage is a single message in the conversation.
type togetherMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// togetherResponse is the response body from the chat completions API.
type togetherResponse struct {
	Choices []togetherChoice `json:"choices"`
}

type togetherChoice struct {
	Message togetherMessage `json:"message"`
}

// Complete sends prompt to the Together API and returns the reply text.
func (b *TogetherBackend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := togetherRequest{
		Model: b.cfg.Model,
		Messages: []togetherMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: b.cfg.Temperature,
		MaxTokens:   maxCompletionTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, togetherAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := httputil.DoWithRetry(ctx, b.client, req, b.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Together API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Together API returned %d: %s", resp.StatusCode, string(body))
	}

	var tResp togetherResponse
	if err := json.NewDecoder(resp.Body).Decode(&tResp); err != nil {
		return "", fmt.Errorf("decoding Together response: %w", err)
	}

	if len(tResp.Choices) == 0 {
		return "", fmt.Errorf("Together API returned no choices")
	}
	return tResp.Choices[0].Message.Content, nil
}
