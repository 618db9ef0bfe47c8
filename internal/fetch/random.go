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

// RandomOptions parameterizes the random-VN operations.
type RandomOptions struct {
	// MaxAttempts bounds id probing in ProbeRandom (default 50).
	MaxAttempts int

	// MaxID is the upper bound of the id range probed (default 1000).
	MaxID int

	MinRating int // default 60
	MinVotes  int // default 100
	Strict    bool
}

func (o RandomOptions) withDefaults() RandomOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 50
	}
	if o.MaxID <= 0 {
		o.MaxID = 1000
	}
	if o.MinRating <= 0 {
		o.MinRating = 60
	}
	if o.MinVotes <= 0 {
		o.MinVotes = 100
	}
	return o
}

// FetchRandom fetches one random safe VN by sampling from a popular pool.
// Returns nil when the pool is empty; that is "no result", not an error.
func (f *Fetcher) FetchRandom(ctx context.Context, opts RandomOptions) (*types.FormattedVN, error) {
	opts = opts.withDefaults()

	pool, err := f.FetchPopular(ctx, PopularOptions{
		MaxResults: 200,
		MinRating:  opts.MinRating,
		MinVotes:   opts.MinVotes,
		Strict:     opts.Strict,
	})
	if err != nil {
		return nil, err
	}

	if vn, ok := f.Selector.Pick(pool); ok {
		return &vn, nil
	}
	return nil, nil
}

// ProbeRandom fetches one random safe VN by probing random numeric ids in
// [1, MaxID]. Each probe is a single-record lookup filtered by id plus the
// language, rating, and vote floors, classified on arrival. Most random
// ids are invalid or filtered, so this is a low-hit-rate strategy; callers
// needing reliable results should prefer FetchRandom or the tag pool.
// Returns nil after MaxAttempts misses (not an error).
func (f *Fetcher) ProbeRandom(ctx context.Context, opts RandomOptions) (*types.FormattedVN, error) {
	opts = opts.withDefaults()

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := fmt.Sprintf("v%d", f.Selector.IntN(opts.MaxID)+1)
		payload := query.Payload{
			Filters: query.And(
				query.Eq("id", id),
				query.Eq("lang", f.Config.Language),
				query.Gte("rating", opts.MinRating),
				query.Gte("votecount", opts.MinVotes),
			),
			Fields:  query.Fields,
			Results: 1,
		}

		records, err := f.fetchPage(ctx, payload)
		if errors.Is(err, errRateLimited) {
			fmt.Fprintf(f.Log, "rate limited, backing off %v\n", httputil.RateLimitDelay)
			if werr := httputil.WaitRateLimit(ctx); werr != nil {
				return nil, werr
			}
			continue
		}
		if err != nil {
			fmt.Fprintf(f.Log, "warning: probe %s: %v\n", id, err)
			if f.SurfaceErrors {
				return nil, err
			}
			continue
		}
		if len(records) == 0 {
			continue
		}

		verdict := f.Classifier.Classify(records[0], opts.Strict)
		if verdict.Safe {
			vn := Format(records[0])
			return &vn, nil
		}
		fmt.Fprintf(f.Log, "filtered out %s: %s\n", titleOf(records[0]), verdict.Reason)
	}

	return nil, nil
}

// FetchRandomWithTags fetches one random safe VN matching the tag
// criteria. It samples from a tag-filtered pool first and falls back to
// the popular pool when the tag pool is empty; both pools use the same
// rating and vote floors. Returns nil when both pools are empty.
func (f *Fetcher) FetchRandomWithTags(ctx context.Context, opts TagOptions) (*types.FormattedVN, error) {
	opts = opts.withDefaults()
	opts.MaxResults = 20
	results, err := f.FetchByTags(ctx, opts)
	if err != nil {
		return nil, err
	}
	if vn, ok := f.Selector.Pick(results); ok {
		return &vn, nil
	}

	popular, err := f.FetchPopular(ctx, PopularOptions{
		MaxResults: 20,
		MinRating:  opts.MinRating,
		MinVotes:   opts.MinVotes,
		Strict:     opts.Strict,
	})
	if err != nil {
		return nil, err
	}
	if vn, ok := f.Selector.Pick(popular); ok {
		return &vn, nil
	}
	return nil, nil
}

// FetchMultiple fetches up to count safe VNs by repeating single random
// fetches sequentially. Misses are skipped, so the result may be shorter
// than count.
func (f *Fetcher) FetchMultiple(ctx context.Context, count int, opts RandomOptions) ([]types.FormattedVN, error) {
	results := make([]types.FormattedVN, 0, count)
	for i := 0; i < count; i++ {
		vn, err := f.FetchRandom(ctx, opts)
		if err != nil {
			return results, err
		}
		if vn == nil {
			continue
		}
		results = append(results, *vn)
		fmt.Fprintf(f.Log, "fetched %d/%d: %s\n", i+1, count, vn.Title)
	}
	return results, nil
}
