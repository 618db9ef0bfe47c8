// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the vnfetch pipeline.
package types

// VNTag is a tag object as returned by the VNDB API. Only the name is
// requested in the field projection.
type VNTag struct {
	Name string `json:"name"`
}

// VNImage is the cover image object as returned by the VNDB API.
type VNImage struct {
	URL string `json:"url"`
}

// VNRecord is a visual novel record as received from the VNDB API.
// Records are never mutated, only transformed into FormattedVN.
type VNRecord struct {
	// ID is the VNDB identifier (e.g. "v17").
	ID string `json:"id"`

	// Title is the main title as returned by the source.
	Title string `json:"title"`

	// Rating is the VNDB rating on the source's 0-100 scale.
	Rating float64 `json:"rating"`

	// VoteCount is the number of user votes behind the rating.
	VoteCount int `json:"votecount"`

	// Released is the release date string (e.g. "2009-10-15").
	Released string `json:"released"`

	// Languages lists the language codes the VN is available in.
	Languages []string `json:"languages"`

	// Description is the free-text description, possibly empty.
	Description string `json:"description"`

	// Image is the cover image reference, nil when absent.
	Image *VNImage `json:"image"`

	// Tags lists the tag objects attached to the record.
	Tags []VNTag `json:"tags"`
}

// TagNames returns the tag names of the record in source order. A nil or
// empty tag list yields an empty slice, never nil dereferences.
func (r VNRecord) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}

// FormattedVN is the canonical display form of a visual novel. It is a value
// object produced by a pure transform from VNRecord and held in caller-owned
// result collections.
type FormattedVN struct {
	// ID is the VNDB identifier ("Unknown" when the source omitted it).
	ID string `json:"id" yaml:"id"`

	// Title is the VN title ("Unknown" when the source omitted it).
	Title string `json:"title" yaml:"title"`

	// Rating is the rating normalized to a 0-10 scale.
	Rating float64 `json:"rating" yaml:"rating"`

	// Votes is the vote count.
	Votes int `json:"votes" yaml:"votes"`

	// Released is the release date string ("Unknown" when absent).
	Released string `json:"released" yaml:"released"`

	// Languages lists the language codes.
	Languages []string `json:"languages" yaml:"languages"`

	// Description is the free-text description, with a placeholder when absent.
	Description string `json:"description" yaml:"description"`

	// ImageURL is the cover image URL, nil when the record has no image.
	ImageURL *string `json:"image_url" yaml:"image_url"`

	// Tags lists up to 15 tag names. The cap is a display payload control,
	// not a safety truncation: classification always sees the full tag list.
	Tags []string `json:"tags" yaml:"tags"`
}
