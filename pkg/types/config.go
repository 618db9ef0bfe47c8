// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "vnfetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DefaultAPIURL is the VNDB Kana visual novel query endpoint.
const DefaultAPIURL = "https://api.vndb.org/kana/vn"

// FetchConfig holds settings for the fetch pipeline.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIURL is the VNDB query endpoint.
	APIURL string `json:"api_url" yaml:"api_url"`

	// Language restricts results to VNs available in this language code
	// (default "en").
	Language string `json:"language" yaml:"language"`

	// Token is an optional VNDB API token attached as an Authorization
	// header when present.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// OverFetch is the factor applied to max results when requesting raw
	// candidates, compensating for records dropped by the safety filter
	// (default 3).
	OverFetch int `json:"over_fetch" yaml:"over_fetch"`

	// MaxPages bounds pagination within one fetch (default 3).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// Defaults fills zero-valued fields with their default values and returns
// the result.
func (c FetchConfig) Defaults() FetchConfig {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "vnfetch/0.1"
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.OverFetch <= 0 {
		c.OverFetch = 3
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 3
	}
	return c
}
