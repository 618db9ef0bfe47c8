// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package safety classifies visual novel records as safe-for-work or not
// by scanning tag names and descriptions against keyword lists.
//
// Matching is substring containment, not word-boundary matching. That is the
// contract: a tag containing "sex" anywhere trips the "sex" keyword, and the
// safe-keyword exemption exists precisely to carve out phrasings like
// "no sexual content" before the scan runs.
package safety

import (
	"fmt"
	"strings"

	"github.com/aryoshi/vnfetch/pkg/types"
)

// Verdict is the outcome of classifying one record. Reason is empty when
// the record is safe.
type Verdict struct {
	Safe   bool
	Reason string
}

// Classifier decides whether a record is safe for work. The zero value is
// not usable; construct with New.
type Classifier struct {
	// nsfwKeywords flag a tag as adult content in strict mode.
	nsfwKeywords []string

	// safeKeywords exempt a tag from NSFW scanning entirely. Exemption is
	// checked before the NSFW scan, per tag, so a tag containing both a
	// safe phrase and an NSFW substring is safe.
	safeKeywords []string

	// explicitNSFW is the smaller subset checked in lenient mode.
	explicitNSFW []string

	// descPatterns are the multi-word phrases scanned in descriptions,
	// strict mode only.
	descPatterns []string
}

// New returns a classifier with the standard keyword lists.
func New() *Classifier {
	return &Classifier{
		nsfwKeywords: []string{
			"sex", "erotic", "hentai", "nukige", "18+",
			"adult only", "explicit", "pornographic", "nudity",
		},
		safeKeywords: []string{
			"no sexual content", "adult protagonist", "adult heroine",
			"mature protagonist", "mature heroine", "adult romance",
			"mature themes", "mature content", "low sexual content",
			"sexual innuendo", "sex change",
		},
		explicitNSFW: []string{"hentai", "nukige", "18+", "erotic", "pornographic"},
		descPatterns: []string{
			"contains sexual", "features erotic", "includes adult content", "hentai game",
		},
	}
}

// Classify inspects the record's tags and description and returns a verdict.
// In strict mode every NSFW keyword is checked against each non-exempt tag
// and the description is scanned for explicit phrases; in lenient mode only
// the explicit tag subset is checked and the description is ignored.
// Classification is a pure function of (tags, description, mode): absent
// fields default to empty and no error is ever produced.
func (c *Classifier) Classify(vn types.VNRecord, strict bool) Verdict {
	tagNames := make([]string, 0, len(vn.Tags))
	for _, tag := range vn.Tags {
		tagNames = append(tagNames, strings.ToLower(tag.Name))
	}
	description := strings.ToLower(vn.Description)

	if strict {
		for _, tagName := range tagNames {
			if c.isExempt(tagName) {
				continue
			}
			for _, keyword := range c.nsfwKeywords {
				if strings.Contains(tagName, keyword) {
					return Verdict{
						Safe:   false,
						Reason: fmt.Sprintf("NSFW tag: '%s' contains '%s'", tagName, keyword),
					}
				}
			}
		}

		for _, pattern := range c.descPatterns {
			if strings.Contains(description, pattern) {
				return Verdict{
					Safe:   false,
					Reason: fmt.Sprintf("NSFW description contains '%s'", pattern),
				}
			}
		}

		return Verdict{Safe: true}
	}

	for _, tagName := range tagNames {
		if c.isExempt(tagName) {
			continue
		}
		for _, keyword := range c.explicitNSFW {
			if strings.Contains(tagName, keyword) {
				return Verdict{Safe: false, Reason: "Contains explicit content tags"}
			}
		}
	}

	return Verdict{Safe: true}
}

// isExempt reports whether the lowercased tag contains a safe-keyword phrase.
func (c *Classifier) isExempt(tagName string) bool {
	for _, safe := range c.safeKeywords {
		if strings.Contains(tagName, safe) {
			return true
		}
	}
	return false
}

// ExplicitKeywords returns the lenient-mode keyword subset. Exposed so the
// strict/lenient containment relation can be checked.
func (c *Classifier) ExplicitKeywords() []string {
	return append([]string(nil), c.explicitNSFW...)
}

// NSFWKeywords returns the strict-mode keyword list.
func (c *Classifier) NSFWKeywords() []string {
	return append([]string(nil), c.nsfwKeywords...)
}
