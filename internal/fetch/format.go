// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aryoshi/vnfetch/pkg/types"
)

// maxDisplayTags caps the tag list of a formatted VN. Purely a payload
// size control for display; classification always sees the full list.
const maxDisplayTags = 15

// Format transforms a raw record into the canonical display form: rating
// normalized from the source's 0-100 scale to 0-10, missing fields
// replaced with placeholders, tag list capped.
func Format(vn types.VNRecord) types.FormattedVN {
	formatted := types.FormattedVN{
		ID:          vn.ID,
		Title:       vn.Title,
		Rating:      vn.Rating / 10,
		Votes:       vn.VoteCount,
		Released:    vn.Released,
		Languages:   vn.Languages,
		Description: vn.Description,
	}

	if formatted.ID == "" {
		formatted.ID = "Unknown"
	}
	if formatted.Title == "" {
		formatted.Title = "Unknown"
	}
	if formatted.Released == "" {
		formatted.Released = "Unknown"
	}
	if formatted.Description == "" {
		formatted.Description = "No description available"
	}

	if vn.Image != nil && vn.Image.URL != "" {
		url := vn.Image.URL
		formatted.ImageURL = &url
	}

	names := vn.TagNames()
	if len(names) > maxDisplayTags {
		names = names[:maxDisplayTags]
	}
	formatted.Tags = names

	return formatted
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.FormattedVN, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-8s  %-44s  %-6s  %-7s  %-10s  %s\n",
		"Rank", "ID", "Title", "Rating", "Votes", "Released", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, vn := range results {
		// Truncate on runes so multibyte titles never split mid-character.
		title := vn.Title
		if runes := []rune(title); len(runes) > 44 {
			title = string(runes[:41]) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-8s  %-44s  %-6.1f  %-7d  %-10s  %s\n",
			i+1, vn.ID, title, vn.Rating, vn.Votes, vn.Released, formatTags(vn.Tags))
	}

	fmt.Fprintf(w, "\n%d result(s)\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.FormattedVN, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatTags(tags []string) string {
	if len(tags) <= 3 {
		return strings.Join(tags, ", ")
	}
	return strings.Join(tags[:3], ", ") + fmt.Sprintf(" (+%d)", len(tags)-3)
}
