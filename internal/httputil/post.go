// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across the fetch pipeline.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateLimitDelay is the fixed wait applied after an HTTP 429 response.
// A single bounded wait, not an exponential retry loop: the request is not
// reissued, the caller returns whatever it has collected. Tests override
// this to avoid real sleeps.
var RateLimitDelay = 2 * time.Second

// PostJSON marshals body and POSTs it to url. The User-Agent header is
// always set; when token is non-empty it is attached as a VNDB
// Authorization header. The caller owns the response body.
//
// The body is encoded with HTML escaping off so comparison operators in
// filter expressions go out as literal ">=" rather than "\u003e=".
func PostJSON(ctx context.Context, client *http.Client, url string, body any, userAgent, token string) (*http.Response, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", url, err)
	}
	return resp, nil
}

// WaitRateLimit blocks for RateLimitDelay or until the context is
// cancelled, whichever comes first.
func WaitRateLimit(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(RateLimitDelay):
		return nil
	}
}
