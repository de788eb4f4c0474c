// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/internal/brand"
	"github.com/pdiddy/content-engine/internal/content"
	"github.com/pdiddy/content-engine/internal/history"
	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/pkg/types"
)

const defaultUserAgent = "content-engine/0.1"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full post generation pipeline",
	Long: `Generate fetches content from a URL and/or takes literal text, produces
three distinct content insights, drafts one LinkedIn post per insight, and
selects the best draft with a justification.

Brand configuration (tone, audience, value proposition, persona) comes from
flags or a brand.yaml profile; flags win when both are given.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("url", "", "website URL to fetch content from")
	generateCmd.Flags().String("content", "", "literal source text")
	generateCmd.Flags().String("content-file", "", "file holding literal source text")
	generateCmd.Flags().String("brand", "", "path to a brand profile YAML file")
	generateCmd.Flags().String("tone", "", "writing tone for the posts")
	generateCmd.Flags().String("audience", "", "target audience")
	generateCmd.Flags().String("value-prop", "", "value proposition")
	generateCmd.Flags().String("persona", "", "brand persona")
	generateCmd.Flags().String("provider", "", "model provider: together or claude")
	generateCmd.Flags().String("model", "", "model identifier")
	generateCmd.Flags().Duration("timeout", 0, "model request timeout (default 120s)")
	generateCmd.Flags().String("out", "", "write the final workflow state to a YAML file")
	generateCmd.Flags().Bool("save", false, "record the run in the history database")
	generateCmd.Flags().String("history-dir", "history", "directory for the history database")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	backend, err := llm.NewBackend(modelConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	fetcher := content.NewHTTPFetcher(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			UserAgent: defaultUserAgent,
		},
		MaxContentLength: viper.GetInt("fetch.max_content_length"),
	})

	p := pipeline.New(backend, fetcher, os.Stderr)
	state, err := p.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	printState(state)

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := writeStateYAML(state, outPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		historyDir, _ := cmd.Flags().GetString("history-dir")
		store, err := history.NewStore(types.HistoryConfig{Dir: historyDir})
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Record(cmd.Context(), state)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Recorded run %s\n", id)
	}

	return nil
}

// requestFromFlags assembles and validates the PostRequest.
func requestFromFlags(cmd *cobra.Command) (types.PostRequest, error) {
	var req types.PostRequest
	req.WebsiteURL, _ = cmd.Flags().GetString("url")
	req.GivenContent, _ = cmd.Flags().GetString("content")
	req.Tone, _ = cmd.Flags().GetString("tone")
	req.TargetAudience, _ = cmd.Flags().GetString("audience")
	req.ValueProposition, _ = cmd.Flags().GetString("value-prop")
	req.BrandPersona, _ = cmd.Flags().GetString("persona")

	if contentFile, _ := cmd.Flags().GetString("content-file"); contentFile != "" {
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return req, fmt.Errorf("reading content file: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if req.GivenContent != "" {
			req.GivenContent += "\n\n" + text
		} else {
			req.GivenContent = text
		}
	}

	if brandPath, _ := cmd.Flags().GetString("brand"); brandPath != "" {
		profile, err := brand.LoadProfile(brandPath)
		if err != nil {
			return req, err
		}
		profile.ApplyTo(&req)
	}

	// All four brand fields are required however they were supplied.
	check := brand.Profile{
		Tone:             req.Tone,
		TargetAudience:   req.TargetAudience,
		ValueProposition: req.ValueProposition,
		BrandPersona:     req.BrandPersona,
	}
	if err := check.Validate(); err != nil {
		return req, err
	}

	if req.WebsiteURL == "" && req.GivenContent == "" {
		fmt.Fprintln(os.Stderr, "warning: no URL or content given; insights will have no grounding source")
	}
	return req, nil
}

// modelConfigFromFlags merges model settings from flags, config file, and
// loaded secrets.
func modelConfigFromFlags(cmd *cobra.Command) types.ModelConfig {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = viper.GetString("model.provider")
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model.model")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("model.timeout")
	}

	cfg := types.ModelConfig{
		Provider:    types.ModelProvider(provider),
		Model:       model,
		Temperature: viper.GetFloat64("model.temperature"),
		Timeout:     timeout,
		MaxRetries:  viper.GetInt("model.max_retries"),
	}
	cfg.APIKey = apiKeyFor(cfg.Provider)
	return cfg
}

// apiKeyFor resolves the provider API key: config file first, then the
// matching .secrets/ key file.
func apiKeyFor(provider types.ModelProvider) string {
	configured := viper.GetString("model.api_key")
	switch provider {
	case types.ProviderClaude:
		return loadedSecrets.Get("anthropic-api-key", configured)
	default:
		return loadedSecrets.Get("together-api-key", configured)
	}
}

// printState renders the drafted posts and the selection to stdout.
func printState(state *types.WorkflowState) {
	for i, p := range state.LinkedinPosts {
		marker := ""
		if state.BestSelected != nil && state.BestSelected.ID == i+1 {
			marker = "  [selected]"
		}
		fmt.Printf("--- Post %d%s ---\n", i+1, marker)
		fmt.Printf("%s\n\n%s\n\n%s\n\n%s\n", p.Title, p.Hook, p.Body, p.CallToAction)
		if len(p.Hashtags) > 0 {
			fmt.Printf("\n%s\n", strings.Join(p.Hashtags, " "))
		}
		fmt.Println()
	}
	if state.BestSelected != nil {
		fmt.Printf("Best post: #%d: %s\n", state.BestSelected.ID, state.BestSelected.Reason)
	}
}

// writeStateYAML writes the final workflow state to path.
func writeStateYAML(state *types.WorkflowState, path string) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
