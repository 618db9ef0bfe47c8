// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch executes queries against the VNDB API and assembles safe,
// formatted result sets.
//
// The pipeline is sequential: each fetch is one or more page requests in
// order, each raw record is classified, and safe records are collected
// until the caller's maximum is reached or candidates run out. Rate limits
// produce a single fixed backoff and a partial result, never an error.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aryoshi/vnfetch/internal/catalog"
	"github.com/aryoshi/vnfetch/internal/httputil"
	"github.com/aryoshi/vnfetch/internal/query"
	"github.com/aryoshi/vnfetch/internal/safety"
	"github.com/aryoshi/vnfetch/pkg/types"
)

// ErrUpstream marks transport faults and non-200 responses from the VNDB
// API. Public methods swallow it into empty results unless SurfaceErrors
// is set, so callers can still distinguish "no matches" from "unreachable"
// when they opt in.
var ErrUpstream = errors.New("vndb request failed")

// errRateLimited signals an HTTP 429 internally.
var errRateLimited = errors.New("rate limited")

// Fetcher runs the request/classify/collect pipeline. Construct one per
// caller context with New and pass it into each operation; it holds no
// result state of its own.
type Fetcher struct {
	Client     *http.Client
	Config     types.FetchConfig
	Catalog    *catalog.Catalog
	Classifier *safety.Classifier
	Selector   *Selector

	// Log receives progress and filter decisions. Defaults to io.Discard.
	Log io.Writer

	// SurfaceErrors returns transport faults as errors instead of empty
	// results. Off by default for compatibility with callers that treat
	// "error" and "no results" identically.
	SurfaceErrors bool
}

// New returns a Fetcher with the standard catalog and classifier.
func New(cfg types.FetchConfig) *Fetcher {
	cfg = cfg.Defaults()
	return &Fetcher{
		Client:     &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
		Catalog:    catalog.New(),
		Classifier: safety.New(),
		Selector:   NewSelector(time.Now().UnixNano()),
		Log:        io.Discard,
	}
}

// vndbResponse is the JSON envelope of a VNDB query response.
type vndbResponse struct {
	Results []types.VNRecord `json:"results"`
	More    bool             `json:"more"`
}

// fetchPage issues one query request and decodes the result page.
func (f *Fetcher) fetchPage(ctx context.Context, payload query.Payload) ([]types.VNRecord, error) {
	resp, err := httputil.PostJSON(ctx, f.Client, f.Config.APIURL, payload, f.Config.UserAgent, f.Config.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: VNDB API returned HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var vr vndbResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrUpstream, err)
	}
	return vr.Results, nil
}

// collect pages through the query, classifying candidates in returned order
// and appending safe ones until max results are collected, candidates are
// exhausted, or the page budget runs out. Each page over-fetches by the
// configured factor to compensate for post-filter attrition.
//
// A 429 stops collection after one fixed backoff wait and yields whatever
// was gathered. Other faults yield the partial pool too, or the error when
// SurfaceErrors is set.
func (f *Fetcher) collect(ctx context.Context, payload query.Payload, max int, strict bool) ([]types.FormattedVN, error) {
	perPage := max * f.Config.OverFetch
	results := make([]types.FormattedVN, 0, max)

	for page := 1; page <= f.Config.MaxPages && len(results) < max; page++ {
		payload.Results = perPage
		payload.Page = page

		records, err := f.fetchPage(ctx, payload)
		if errors.Is(err, errRateLimited) {
			fmt.Fprintf(f.Log, "rate limited, backing off %v\n", httputil.RateLimitDelay)
			httputil.WaitRateLimit(ctx)
			return results, nil
		}
		if err != nil {
			fmt.Fprintf(f.Log, "warning: %v\n", err)
			if f.SurfaceErrors {
				return nil, err
			}
			return results, nil
		}

		for _, vn := range records {
			if len(results) >= max {
				break
			}
			verdict := f.Classifier.Classify(vn, strict)
			if verdict.Safe {
				results = append(results, Format(vn))
			} else {
				fmt.Fprintf(f.Log, "filtered out %s: %s\n", titleOf(vn), verdict.Reason)
			}
		}

		// A short page means the source has no further candidates.
		if len(records) < perPage {
			break
		}
	}

	return results, nil
}

func titleOf(vn types.VNRecord) string {
	if vn.Title == "" {
		return "Unknown"
	}
	return vn.Title
}

// TagOptions parameterizes tag-based fetches.
type TagOptions struct {
	Required []string
	Excluded []string

	// Logic is query.LogicAny (union) or query.LogicAll (intersection)
	// for multiple required tags. Defaults to any.
	Logic string

	MaxResults int // default 10
	MinRating  int // default 60, source 0-100 scale
	MinVotes   int // default 50
	Strict     bool
	SortBy     string // default "rating"
}

func (o TagOptions) withDefaults() TagOptions {
	if o.Logic == "" {
		o.Logic = query.LogicAny
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	if o.MinRating <= 0 {
		o.MinRating = 60
	}
	if o.MinVotes <= 0 {
		o.MinVotes = 50
	}
	if o.SortBy == "" {
		o.SortBy = "rating"
	}
	return o
}

// FetchByTags fetches safe VNs matching the tag criteria. At least one of
// Required or Excluded must be supplied; that is the only synchronously
// surfaced configuration error.
func (f *Fetcher) FetchByTags(ctx context.Context, opts TagOptions) ([]types.FormattedVN, error) {
	if len(opts.Required) == 0 && len(opts.Excluded) == 0 {
		return nil, query.ErrNoTags
	}
	opts = opts.withDefaults()

	exprs := query.BaseFilters(f.Config.Language, opts.MinRating, opts.MinVotes)
	exprs = append(exprs, query.BuildTagFilters(f.Catalog, opts.Required, opts.Excluded, opts.Logic)...)

	payload := query.Payload{
		Filters: query.And(exprs...),
		Fields:  query.Fields,
		Sort:    opts.SortBy,
		Reverse: true,
	}

	fmt.Fprintf(f.Log, "fetching by tags: required=%v excluded=%v logic=%s\n",
		opts.Required, opts.Excluded, opts.Logic)

	return f.collect(ctx, payload, opts.MaxResults, opts.Strict)
}

// PopularOptions parameterizes popularity fetches.
type PopularOptions struct {
	MaxResults int // default 10
	MinRating  int // default 70
	MinVotes   int // default 100
	Strict     bool
}

func (o PopularOptions) withDefaults() PopularOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	if o.MinRating <= 0 {
		o.MinRating = 70
	}
	if o.MinVotes <= 0 {
		o.MinVotes = 100
	}
	return o
}

// FetchPopular fetches safe highly-rated VNs with no tag constraints,
// sorted by rating descending. Used directly and as the fallback pool for
// the random strategies.
func (f *Fetcher) FetchPopular(ctx context.Context, opts PopularOptions) ([]types.FormattedVN, error) {
	opts = opts.withDefaults()

	payload := query.Payload{
		Filters: query.And(query.BaseFilters(f.Config.Language, opts.MinRating, opts.MinVotes)...),
		Fields:  query.Fields,
		Sort:    "rating",
		Reverse: true,
	}

	return f.collect(ctx, payload, opts.MaxResults, opts.Strict)
}
