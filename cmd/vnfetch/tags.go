// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryoshi/vnfetch/internal/fetch"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Fetch safe VNs by required and excluded tags",
	Long: `Tags fetches safe visual novels matching tag criteria. Tag names are
resolved against the built-in catalog (see "vnfetch catalog"); unknown names
are passed to the API as-is. With --logic any, a title matching any required
tag qualifies; with --logic all, every required tag must be present.
Excluded tags are always applied individually.

At least one of --require or --exclude must be given.`,
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().String("require", "", "required tags (comma-separated)")
	tagsCmd.Flags().String("exclude", "", "excluded tags (comma-separated)")
	tagsCmd.Flags().String("logic", "any", "tag logic for multiple required tags: any or all")
	tagsCmd.Flags().Int("max-results", 10, "maximum number of results")
	tagsCmd.Flags().Int("min-rating", 60, "minimum rating (0-100)")
	tagsCmd.Flags().Int("min-votes", 50, "minimum vote count")
	tagsCmd.Flags().String("sort", "rating", "sort key: rating, votecount, or released")
	tagsCmd.Flags().Bool("strict", true, "strict content filtering")
	tagsCmd.Flags().String("save", "", "save the run to a YAML result file")

	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	require, _ := cmd.Flags().GetString("require")
	exclude, _ := cmd.Flags().GetString("exclude")
	logic, _ := cmd.Flags().GetString("logic")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	minRating, _ := cmd.Flags().GetInt("min-rating")
	minVotes, _ := cmd.Flags().GetInt("min-votes")
	sortBy, _ := cmd.Flags().GetString("sort")
	strict, _ := cmd.Flags().GetBool("strict")
	savePath, _ := cmd.Flags().GetString("save")

	opts := fetch.TagOptions{
		Required:   splitTags(require),
		Excluded:   splitTags(exclude),
		Logic:      logic,
		MaxResults: maxResults,
		MinRating:  minRating,
		MinVotes:   minVotes,
		SortBy:     sortBy,
		Strict:     strict,
	}

	f := newFetcher(cmd)
	results, err := f.FetchByTags(context.Background(), opts)
	if err != nil {
		return err
	}

	if savePath != "" {
		params := fetch.RunParams{
			Required:   opts.Required,
			Excluded:   opts.Excluded,
			Logic:      opts.Logic,
			MaxResults: maxResults,
			MinRating:  minRating,
			MinVotes:   minVotes,
			Strict:     strict,
		}
		if err := fetch.WriteResultFile(savePath, params, results, nil); err != nil {
			return err
		}
	}

	if err := writeResults(cmd, results, os.Stdout); err != nil {
		return err
	}
	return writeSummary(results, os.Stdout)
}
