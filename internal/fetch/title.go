// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aryoshi/vnfetch/internal/httputil"
	"github.com/aryoshi/vnfetch/internal/query"
	"github.com/aryoshi/vnfetch/pkg/types"
)

// SearchOptions parameterizes title searches.
type SearchOptions struct {
	MaxResults int // default 10
	MinVotes   int // default 50
	Strict     bool

	// Debug collects per-record diagnostics.
	Debug bool
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	if o.MinVotes <= 0 {
		o.MinVotes = 50
	}
	return o
}

// Diagnostics describes what a title search saw before and after the
// safety filter. Returned only when SearchOptions.Debug is set.
type Diagnostics struct {
	// Strategy names the relaxation level that produced the results.
	Strategy string `json:"strategy" yaml:"strategy"`

	// TotalFound counts raw candidates across all strategies tried.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// FilteredOut counts candidates rejected by the safety classifier.
	FilteredOut int `json:"filtered_out" yaml:"filtered_out"`

	// Reasons lists the rejection reasons in encounter order.
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// titleStrategy is one relaxation level of a title search. Strategies are
// tried in declaration order; the first one yielding at least one safe
// result wins.
type titleStrategy struct {
	name    string
	filters func(f *Fetcher, title string, opts SearchOptions) query.Expr
}

// titleStrategies is the relaxation ladder: full filters first, then drop
// the vote floor, then drop the language filter. Insisting on every filter
// at once silently returns nothing for most titles, so each level trades
// precision for recall.
var titleStrategies = []titleStrategy{
	{
		name: "full filters",
		filters: func(f *Fetcher, title string, opts SearchOptions) query.Expr {
			return query.And(
				query.Eq("search", title),
				query.Eq("lang", f.Config.Language),
				query.Gte("votecount", opts.MinVotes),
			)
		},
	},
	{
		name: "no vote floor",
		filters: func(f *Fetcher, title string, _ SearchOptions) query.Expr {
			return query.And(
				query.Eq("search", title),
				query.Eq("lang", f.Config.Language),
			)
		},
	},
	{
		name: "any language",
		filters: func(_ *Fetcher, title string, _ SearchOptions) query.Expr {
			return query.And(query.Eq("search", title))
		},
	},
}

// SearchByTitle searches safe VNs by free-text title with multi-strategy
// fallback. A strategy that errors or yields no safe results is absorbed
// and the next one is tried; only exhaustion of the whole ladder produces
// an empty result. Diagnostics are non-nil only when opts.Debug is set.
func (f *Fetcher) SearchByTitle(ctx context.Context, title string, opts SearchOptions) ([]types.FormattedVN, *Diagnostics, error) {
	if title == "" {
		return nil, nil, fmt.Errorf("search title must not be empty")
	}
	opts = opts.withDefaults()

	diag := &Diagnostics{}
	var lastErr error

	for _, strategy := range titleStrategies {
		payload := query.Payload{
			Filters: strategy.filters(f, title, opts),
			Fields:  query.Fields,
			Results: opts.MaxResults * 2,
			Sort:    "rating",
			Reverse: true,
		}

		fmt.Fprintf(f.Log, "title search %q: trying strategy %q\n", title, strategy.name)

		records, err := f.fetchPage(ctx, payload)
		if errors.Is(err, errRateLimited) {
			fmt.Fprintf(f.Log, "rate limited, backing off %v\n", httputil.RateLimitDelay)
			httputil.WaitRateLimit(ctx)
			break
		}
		if err != nil {
			// Partial-strategy failure: absorb and move down the ladder.
			fmt.Fprintf(f.Log, "warning: strategy %q: %v\n", strategy.name, err)
			lastErr = err
			continue
		}

		diag.TotalFound += len(records)

		var safe []types.FormattedVN
		for _, vn := range records {
			if len(safe) >= opts.MaxResults {
				break
			}
			verdict := f.Classifier.Classify(vn, opts.Strict)
			if verdict.Safe {
				safe = append(safe, Format(vn))
				continue
			}
			diag.FilteredOut++
			if opts.Debug {
				diag.Reasons = append(diag.Reasons, fmt.Sprintf("%s: %s", titleOf(vn), verdict.Reason))
			}
			fmt.Fprintf(f.Log, "filtered out %s: %s\n", titleOf(vn), verdict.Reason)
		}

		if len(safe) > 0 {
			diag.Strategy = strategy.name
			if !opts.Debug {
				diag = nil
			}
			return safe, diag, nil
		}
	}

	if lastErr != nil && f.SurfaceErrors {
		return nil, nil, lastErr
	}
	if !opts.Debug {
		diag = nil
	}
	return nil, diag, nil
}
