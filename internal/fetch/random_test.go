// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestFetchRandomSamplesPopularPool(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w,
			vn("v1", "First", 90, 1000, "Drama"),
			vn("v2", "Second", 88, 900, "Comedy"),
		)
	})

	got, err := f.FetchRandom(context.Background(), RandomOptions{Strict: true})
	if err != nil {
		t.Fatalf("FetchRandom: %v", err)
	}
	if got == nil {
		t.Fatal("want a result")
	}
	if got.Title != "First" && got.Title != "Second" {
		t.Errorf("got %q, want a pool member", got.Title)
	}
}

func TestFetchRandomEmptyPool(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w)
	})

	got, err := f.FetchRandom(context.Background(), RandomOptions{})
	if err != nil {
		t.Fatalf("FetchRandom: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for empty pool", got)
	}
}

func TestProbeRandomFindsSafeHit(t *testing.T) {
	var probedIDs []string
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		p := decodePayload(t, r)
		fj := filtersJSON(t, p)
		probedIDs = append(probedIDs, fj)

		// Miss until the third probe.
		if len(probedIDs) < 3 {
			respond(t, w)
			return
		}
		respond(t, w, vn("v42", "Lucky Hit", 74, 300, "Drama"))
	})

	got, err := f.ProbeRandom(context.Background(), RandomOptions{
		MaxAttempts: 10,
		MaxID:       100,
		Strict:      true,
	})
	if err != nil {
		t.Fatalf("ProbeRandom: %v", err)
	}
	if got == nil || got.Title != "Lucky Hit" {
		t.Fatalf("got %+v", got)
	}
	if len(probedIDs) != 3 {
		t.Errorf("probed %d times, want 3", len(probedIDs))
	}

	// Each probe filters by a single id plus the floors.
	for _, fj := range probedIDs {
		if !strings.Contains(fj, `["id","=","v`) {
			t.Errorf("probe filters = %s, want id clause", fj)
		}
		if !strings.Contains(fj, `["votecount",">=",100]`) {
			t.Errorf("probe filters = %s, want vote floor", fj)
		}
	}
}

func TestProbeRandomExhaustsAttempts(t *testing.T) {
	var calls int
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		respond(t, w)
	})

	got, err := f.ProbeRandom(context.Background(), RandomOptions{MaxAttempts: 4, MaxID: 10})
	if err != nil {
		t.Fatalf("ProbeRandom: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil after exhaustion", got)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestProbeRandomSkipsUnsafeHit(t *testing.T) {
	var calls int
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			respond(t, w, vn("v13", "Racy", 80, 500, "Nukige"))
			return
		}
		respond(t, w, vn("v14", "Clean", 72, 250, "Drama"))
	})

	got, err := f.ProbeRandom(context.Background(), RandomOptions{MaxAttempts: 5, MaxID: 50, Strict: true})
	if err != nil {
		t.Fatalf("ProbeRandom: %v", err)
	}
	if got == nil || got.Title != "Clean" {
		t.Fatalf("got %+v, want the second probe's record", got)
	}
}

// Tag pool empty: the random-with-tags operation falls back to the
// popular pool.
func TestFetchRandomWithTagsFallsBackToPopular(t *testing.T) {
	var filters []string
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		fj := filtersJSON(t, decodePayload(t, r))
		filters = append(filters, fj)

		if strings.Contains(fj, "tag") {
			respond(t, w) // tag pool is empty
			return
		}
		respond(t, w, vn("v5", "Popular Pick", 85, 2000, "Drama"))
	})

	got, err := f.FetchRandomWithTags(context.Background(), TagOptions{
		Required: []string{"Mystery"},
		Strict:   true,
	})
	if err != nil {
		t.Fatalf("FetchRandomWithTags: %v", err)
	}
	if got == nil || got.Title != "Popular Pick" {
		t.Fatalf("got %+v", got)
	}
	if len(filters) < 2 {
		t.Fatalf("issued %d requests, want tag query then popular fallback", len(filters))
	}
	if strings.Contains(filters[len(filters)-1], "tag") {
		t.Errorf("fallback filters = %s, want no tag constraints", filters[len(filters)-1])
	}
	// The fallback keeps the tag pool's floors instead of reverting to
	// the popular defaults.
	for _, fj := range []string{filters[0], filters[len(filters)-1]} {
		if !strings.Contains(fj, `["rating",">=",60]`) || !strings.Contains(fj, `["votecount",">=",50]`) {
			t.Errorf("filters = %s, want shared 60/50 floors in both pools", fj)
		}
	}
}

func TestFetchRandomWithTagsPrefersTagPool(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		fj := filtersJSON(t, decodePayload(t, r))
		if !strings.Contains(fj, "tag") {
			t.Errorf("unexpected popular fallback: %s", fj)
		}
		respond(t, w, vn("v8", "Tagged Pick", 78, 600, "Mystery"))
	})

	got, err := f.FetchRandomWithTags(context.Background(), TagOptions{
		Required: []string{"Mystery"},
	})
	if err != nil {
		t.Fatalf("FetchRandomWithTags: %v", err)
	}
	if got == nil || got.Title != "Tagged Pick" {
		t.Fatalf("got %+v", got)
	}
}

func TestFetchRandomWithTagsRequiresTags(t *testing.T) {
	f := New(testConfig())
	if _, err := f.FetchRandomWithTags(context.Background(), TagOptions{}); err == nil {
		t.Fatal("want configuration error without tags")
	}
}

func TestFetchMultipleSequentialFetches(t *testing.T) {
	var calls int
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Single-member pool keeps the picks deterministic.
		respond(t, w, vn("v1", "Only One", 80, 400, "Drama"))
	})

	results, err := f.FetchMultiple(context.Background(), 3, RandomOptions{Strict: true})
	if err != nil {
		t.Fatalf("FetchMultiple: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if calls != 3 {
		t.Errorf("issued %d requests, want one per fetch", calls)
	}
}

func TestFetchMultipleSkipsMisses(t *testing.T) {
	var calls int
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			respond(t, w) // one empty pool mid-run
			return
		}
		respond(t, w, vn("v1", "Only One", 80, 400, "Drama"))
	})

	results, err := f.FetchMultiple(context.Background(), 3, RandomOptions{})
	if err != nil {
		t.Fatalf("FetchMultiple: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2 (one miss skipped)", len(results))
	}
}

// Guard against the response envelope changing shape.
func TestResponseEnvelopeDecoding(t *testing.T) {
	raw := `{"results":[{"id":"v17","title":"Ever17","rating":85,"votecount":5000,
		"released":"2002-08-29","languages":["en","ja"],"description":"d",
		"image":{"url":"https://s2.vndb.org/cv/x.jpg"},"tags":[{"name":"Mystery"}]}],"more":false}`

	var vr vndbResponse
	if err := json.Unmarshal([]byte(raw), &vr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(vr.Results) != 1 {
		t.Fatalf("results = %+v", vr.Results)
	}
	rec := vr.Results[0]
	if rec.ID != "v17" || rec.Image == nil || rec.Image.URL == "" || len(rec.Tags) != 1 {
		t.Errorf("decoded record = %+v", rec)
	}
}
