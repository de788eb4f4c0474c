// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/content"
	"github.com/pdiddy/content-engine/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a page and print its extracted text",
	Long: `Fetch runs the content acquisition stage on its own: normalize the URL,
download the page, strip markup, and print the visible text. Useful for
checking what the pipeline will see before running generate.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Int("max-length", 0, "maximum characters of extracted text (default 10000)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	url, err := content.EnsureURL(args[0])
	if err != nil {
		return err
	}

	maxLength, _ := cmd.Flags().GetInt("max-length")
	fetcher := content.NewHTTPFetcher(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			UserAgent: defaultUserAgent,
		},
		MaxContentLength: maxLength,
	})

	text, err := fetcher.Fetch(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	fmt.Println(text)
	return nil
}
