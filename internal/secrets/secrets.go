// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the optional VNDB API token from a plain-text file.
// The Kana API serves anonymous queries fine; a token only raises limits
// and unlocks authenticated endpoints, so a missing file is never an error.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenFile is the filename the token is read from inside the secrets
// directory.
const TokenFile = "vndb-api-token"

// LoadToken reads the VNDB API token from dir/vndb-api-token. A missing
// directory or file yields an empty token, not an error; only an
// unreadable existing file fails.
func LoadToken(dir string) (string, error) {
	path := filepath.Join(dir, TokenFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file %s: %w", path, err)
	}

	return strings.TrimSpace(string(data)), nil
}
