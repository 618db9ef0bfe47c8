// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryoshi/vnfetch/internal/fetch"
	"github.com/aryoshi/vnfetch/pkg/types"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch one or more random safe VNs",
	Long: `Random fetches safe visual novels at random. By default it samples from
a pool of popular titles passing the rating and vote floors. With --probe it
instead probes random VNDB ids, which is slower and frequently misses. With
--require or --exclude it samples from a tag-filtered pool, falling back to
the popular pool when the tag pool is empty.`,
	RunE: runRandom,
}

func init() {
	randomCmd.Flags().Int("count", 1, "number of VNs to fetch")
	randomCmd.Flags().Bool("probe", false, "probe random ids instead of sampling the popular pool")
	randomCmd.Flags().Int("attempts", 50, "maximum id probes before giving up (with --probe)")
	randomCmd.Flags().Int("max-id", 1000, "upper bound of the probed id range (with --probe)")
	randomCmd.Flags().Bool("strict", true, "strict content filtering")
	randomCmd.Flags().Int("min-rating", 60, "minimum rating (0-100)")
	randomCmd.Flags().Int("min-votes", 100, "minimum vote count")
	randomCmd.Flags().String("require", "", "required tags (comma-separated)")
	randomCmd.Flags().String("exclude", "", "excluded tags (comma-separated)")
	randomCmd.Flags().String("logic", "any", "tag logic for multiple required tags: any or all")

	rootCmd.AddCommand(randomCmd)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func runRandom(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	probe, _ := cmd.Flags().GetBool("probe")
	attempts, _ := cmd.Flags().GetInt("attempts")
	maxID, _ := cmd.Flags().GetInt("max-id")
	strict, _ := cmd.Flags().GetBool("strict")
	minRating, _ := cmd.Flags().GetInt("min-rating")
	minVotes, _ := cmd.Flags().GetInt("min-votes")
	require, _ := cmd.Flags().GetString("require")
	exclude, _ := cmd.Flags().GetString("exclude")
	logic, _ := cmd.Flags().GetString("logic")

	f := newFetcher(cmd)
	ctx := context.Background()

	required := splitTags(require)
	excluded := splitTags(exclude)

	opts := fetch.RandomOptions{
		MaxAttempts: attempts,
		MaxID:       maxID,
		MinRating:   minRating,
		MinVotes:    minVotes,
		Strict:      strict,
	}

	var results []types.FormattedVN
	for i := 0; i < count; i++ {
		var vn *types.FormattedVN
		var err error
		switch {
		case len(required) > 0 || len(excluded) > 0:
			vn, err = f.FetchRandomWithTags(ctx, fetch.TagOptions{
				Required:  required,
				Excluded:  excluded,
				Logic:     logic,
				MinRating: minRating,
				MinVotes:  minVotes,
				Strict:    strict,
			})
		case probe:
			vn, err = f.ProbeRandom(ctx, opts)
		default:
			vn, err = f.FetchRandom(ctx, opts)
		}
		if err != nil {
			return err
		}
		if vn != nil {
			results = append(results, *vn)
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No VN found with the current criteria. Try relaxing the filters.")
	}
	if err := writeResults(cmd, results, os.Stdout); err != nil {
		return err
	}
	if count > 1 {
		return writeSummary(results, os.Stdout)
	}
	return nil
}
