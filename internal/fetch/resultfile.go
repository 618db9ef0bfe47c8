// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/aryoshi/vnfetch/pkg/types"
)

// ResultFile is the on-disk representation of a fetch run and its results.
// A run can be saved to a file and reloaded later without re-querying the
// API.
type ResultFile struct {
	Params  RunParams           `yaml:"params"`
	Results []types.FormattedVN `yaml:"results"`
	Summary RunSummary          `yaml:"summary"`
}

// RunParams stores the query parameters that produced the results.
type RunParams struct {
	Title    string   `yaml:"title,omitempty"`
	Required []string `yaml:"required_tags,omitempty"`
	Excluded []string `yaml:"excluded_tags,omitempty"`
	Logic    string   `yaml:"tag_logic,omitempty"`

	MaxResults int  `yaml:"max_results"`
	MinRating  int  `yaml:"min_rating,omitempty"`
	MinVotes   int  `yaml:"min_votes,omitempty"`
	Strict     bool `yaml:"strict"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Total       int          `yaml:"total"`
	Diagnostics *Diagnostics `yaml:"diagnostics,omitempty"`
	Timestamp   time.Time    `yaml:"timestamp"`
}

// WriteResultFile saves run parameters and results to a YAML file.
func WriteResultFile(path string, params RunParams, results []types.FormattedVN, diag *Diagnostics) error {
	rf := ResultFile{
		Params:  params,
		Results: results,
		Summary: RunSummary{
			Total:       len(results),
			Diagnostics: diag,
			Timestamp:   time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("encoding result file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file %s: %w", path, err)
	}
	return nil
}

// ReadResultFile loads a previously saved run.
func ReadResultFile(path string) (ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultFile{}, fmt.Errorf("reading result file %s: %w", path, err)
	}

	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return ResultFile{}, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return rf, nil
}
