// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maps human-readable visual novel tag names to VNDB tag
// identifiers, grouped into categories for selection UIs.
package catalog

import "sort"

// Catalog is a read-only mapping between tag labels and VNDB tag ids.
// Contents are fixed at construction; there is no dynamic registration.
type Catalog struct {
	tagMap     map[string]string
	categories map[string][]string
}

// New returns the static tag catalog.
func New() *Catalog {
	return &Catalog{
		tagMap: map[string]string{
			// Story genres
			"Mystery":         "g19",
			"Horror":          "g7",
			"Comedy":          "g104",
			"Drama":           "g147",
			"Slice of Life":   "g454",
			"Thriller":        "g789",
			"Romance":         "g96",
			"Action":          "g12",
			"Fantasy":         "g2",
			"Science Fiction": "g105",

			// Protagonist types
			"Male Protagonist":      "g133",
			"Female Protagonist":    "g134",
			"Multiple Protagonists": "g136",
			"Adult Protagonist":     "g137",
			"Student Protagonist":   "g544",

			// Gameplay
			"Multiple Endings": "g148",
			"Kinetic Novel":    "g709",
			"Linear Plot":      "g145",
			"Branching Plot":   "g606",

			// Setting
			"School":     "g47",
			"Modern Day": "g143",
			"Past":       "g141",
			"Future":     "g140",

			// Themes
			"Friendship": "g710",
			"Family":     "g215",
			"Military":   "g46",
		},
		categories: map[string][]string{
			"story": {"Mystery", "Horror", "Comedy", "Drama", "Slice of Life",
				"Thriller", "Romance", "Action", "Fantasy", "Science Fiction"},
			"protagonist": {"Male Protagonist", "Female Protagonist", "Multiple Protagonists",
				"Adult Protagonist", "Student Protagonist"},
			"gameplay": {"Multiple Endings", "Linear Plot", "Kinetic Novel",
				"Branching Plot"},
			"setting": {"School", "Modern Day", "Past", "Future"},
			"themes":  {"Friendship", "Family", "Military"},
		},
	}
}

// Resolve substitutes each known label with its VNDB tag id. Unknown names
// pass through unchanged: they are treated as already being ids or raw
// search terms, so resolution is total and never fails. The returned slice
// always has the same length as the input.
func (c *Catalog) Resolve(names []string) []string {
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := c.tagMap[name]; ok {
			resolved = append(resolved, id)
		} else {
			resolved = append(resolved, name)
		}
	}
	return resolved
}

// Available returns the catalog labels grouped by category. The returned
// map is a copy; mutating it does not affect the catalog.
func (c *Catalog) Available() map[string][]string {
	out := make(map[string][]string, len(c.categories))
	for category, labels := range c.categories {
		out[category] = append([]string(nil), labels...)
	}
	return out
}

// Report describes the outcome of a catalog self-check.
type Report struct {
	// Duplicates maps each tag id claimed by more than one label to the
	// labels that claim it.
	Duplicates map[string][]string

	// TotalMappings is the number of label→id entries.
	TotalMappings int

	// UniqueIDs is the number of distinct tag ids.
	UniqueIDs int
}

// HasDuplicates reports whether any tag id is claimed by multiple labels.
func (r Report) HasDuplicates() bool { return len(r.Duplicates) > 0 }

// Validate checks the catalog for tag-id collisions and returns a report.
// Collisions are reported, not repaired: which label "wins" at query time
// is left to the mapping as written.
func (c *Catalog) Validate() Report {
	idToLabels := make(map[string][]string)
	for label, id := range c.tagMap {
		idToLabels[id] = append(idToLabels[id], label)
	}

	duplicates := make(map[string][]string)
	for id, labels := range idToLabels {
		if len(labels) > 1 {
			sort.Strings(labels)
			duplicates[id] = labels
		}
	}

	return Report{
		Duplicates:    duplicates,
		TotalMappings: len(c.tagMap),
		UniqueIDs:     len(idToLabels),
	}
}
