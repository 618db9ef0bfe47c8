// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryoshi/vnfetch/internal/fetch"
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Fetch popular highly-rated safe VNs",
	Long: `Popular fetches safe visual novels sorted by rating descending, with no
tag constraints. Raw candidates are over-fetched to compensate for titles
dropped by the safety filter.`,
	RunE: runPopular,
}

func init() {
	popularCmd.Flags().Int("max-results", 10, "maximum number of results")
	popularCmd.Flags().Int("min-rating", 70, "minimum rating (0-100)")
	popularCmd.Flags().Int("min-votes", 100, "minimum vote count")
	popularCmd.Flags().Bool("strict", true, "strict content filtering")

	rootCmd.AddCommand(popularCmd)
}

func runPopular(cmd *cobra.Command, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	minRating, _ := cmd.Flags().GetInt("min-rating")
	minVotes, _ := cmd.Flags().GetInt("min-votes")
	strict, _ := cmd.Flags().GetBool("strict")

	f := newFetcher(cmd)
	results, err := f.FetchPopular(context.Background(), fetch.PopularOptions{
		MaxResults: maxResults,
		MinRating:  minRating,
		MinVotes:   minVotes,
		Strict:     strict,
	})
	if err != nil {
		return err
	}

	if err := writeResults(cmd, results, os.Stdout); err != nil {
		return err
	}
	return writeSummary(results, os.Stdout)
}
