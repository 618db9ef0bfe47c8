// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"path/filepath"
	"testing"

	"github.com/aryoshi/vnfetch/pkg/types"
)

func TestResultFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	params := RunParams{
		Required:   []string{"Romance", "Comedy"},
		Excluded:   []string{"Horror"},
		Logic:      "any",
		MaxResults: 10,
		MinRating:  60,
		MinVotes:   50,
		Strict:     true,
	}
	url := "https://s2.vndb.org/cv/x.jpg"
	results := []types.FormattedVN{
		{ID: "v17", Title: "Ever17", Rating: 8.5, Votes: 5000, Released: "2002-08-29",
			Languages: []string{"en", "ja"}, Description: "d", ImageURL: &url,
			Tags: []string{"Mystery"}},
	}
	diag := &Diagnostics{Strategy: "full filters", TotalFound: 3, FilteredOut: 2}

	if err := WriteResultFile(path, params, results, diag); err != nil {
		t.Fatalf("WriteResultFile: %v", err)
	}

	got, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}

	if got.Params.Logic != "any" || len(got.Params.Required) != 2 || !got.Params.Strict {
		t.Errorf("params = %+v", got.Params)
	}
	if got.Summary.Total != 1 || got.Summary.Timestamp.IsZero() {
		t.Errorf("summary = %+v", got.Summary)
	}
	if got.Summary.Diagnostics == nil || got.Summary.Diagnostics.FilteredOut != 2 {
		t.Errorf("diagnostics = %+v", got.Summary.Diagnostics)
	}
	if len(got.Results) != 1 || got.Results[0].ID != "v17" || got.Results[0].Rating != 8.5 {
		t.Errorf("results = %+v", got.Results)
	}
	if got.Results[0].ImageURL == nil || *got.Results[0].ImageURL != url {
		t.Errorf("image url = %v", got.Results[0].ImageURL)
	}
}

func TestReadResultFileMissing(t *testing.T) {
	if _, err := ReadResultFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
