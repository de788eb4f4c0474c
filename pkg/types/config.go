package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the content acquisition stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxContentLength caps the number of characters of visible text
	// extracted from a fetched page (default 10000).
	MaxContentLength int `json:"max_content_length" yaml:"max_content_length"`
}

// ModelProvider identifies the hosted model endpoint.
type ModelProvider string

const (
	ProviderTogether ModelProvider = "together"
	ProviderClaude   ModelProvider = "claude"
)

// ModelConfig holds settings for the model invocation client. Timeout and
// retry count are configured once here, at the client level, not per call.
type ModelConfig struct {
	// Provider selects the hosted endpoint: together or claude.
	Provider ModelProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier
	// (e.g. "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout is the per-request timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default "history").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Model   ModelConfig   `json:"model" yaml:"model"`
	History HistoryConfig `json:"history" yaml:"history"`
}
