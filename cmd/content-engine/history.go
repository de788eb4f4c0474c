// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/internal/history"
	"github.com/pdiddy/content-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded pipeline runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the full state of a recorded run as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().String("dir", "history", "directory holding the history database")
	historyListCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dir, _ := cmd.Flags().GetString("dir")
	return history.NewStore(types.HistoryConfig{Dir: dir})
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	summaries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, s := range summaries {
		source := s.WebsiteURL
		if source == "" {
			source = "(literal content)"
		}
		best := "-"
		if s.BestID > 0 {
			best = fmt.Sprintf("#%d", s.BestID)
		}
		fmt.Printf("%s  %s  tone=%s posts=%d best=%s  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Tone, s.PostCount, best, source)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
