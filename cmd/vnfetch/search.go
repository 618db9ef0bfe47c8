// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryoshi/vnfetch/internal/fetch"
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search safe VNs by title with fallback strategies",
	Long: `Search looks up safe visual novels by free-text title. The query is
tried with full filters first; when nothing safe comes back, the vote floor
and then the language filter are dropped in turn, stopping at the first
strategy that yields a result. --debug reports how many candidates each run
saw and why records were filtered out.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 10, "maximum number of results")
	searchCmd.Flags().Int("min-votes", 50, "minimum vote count (first strategy only)")
	searchCmd.Flags().Bool("strict", true, "strict content filtering")
	searchCmd.Flags().Bool("debug", false, "print search diagnostics")
	searchCmd.Flags().String("save", "", "save the run to a YAML result file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	title := args[0]
	maxResults, _ := cmd.Flags().GetInt("max-results")
	minVotes, _ := cmd.Flags().GetInt("min-votes")
	strict, _ := cmd.Flags().GetBool("strict")
	debug, _ := cmd.Flags().GetBool("debug")
	savePath, _ := cmd.Flags().GetString("save")

	f := newFetcher(cmd)
	results, diag, err := f.SearchByTitle(context.Background(), title, fetch.SearchOptions{
		MaxResults: maxResults,
		MinVotes:   minVotes,
		Strict:     strict,
		Debug:      debug,
	})
	if err != nil {
		return err
	}

	if savePath != "" {
		params := fetch.RunParams{
			Title:      title,
			MaxResults: maxResults,
			MinVotes:   minVotes,
			Strict:     strict,
		}
		if err := fetch.WriteResultFile(savePath, params, results, diag); err != nil {
			return err
		}
	}

	if err := writeResults(cmd, results, os.Stdout); err != nil {
		return err
	}

	if diag != nil {
		fmt.Fprintf(os.Stderr, "strategy: %s, candidates seen: %d, filtered out: %d\n",
			orNone(diag.Strategy), diag.TotalFound, diag.FilteredOut)
		if len(diag.Reasons) > 0 {
			fmt.Fprintf(os.Stderr, "reasons:\n  %s\n", strings.Join(diag.Reasons, "\n  "))
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
