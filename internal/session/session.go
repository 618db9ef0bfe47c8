// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session accumulates fetched results for the lifetime of one
// caller session. The store is an explicit object constructed by the
// caller and passed into whatever needs it; there is no ambient state.
// Backed by an in-memory SQLite database by default, so nothing outlives
// the session.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aryoshi/vnfetch/pkg/types"
)

// MemoryDSN opens the store without touching disk.
const MemoryDSN = ":memory:"

// Store accumulates formatted VNs for one session.
type Store struct {
	db *sql.DB
}

// NewStore opens a session store at dsn. Use MemoryDSN for an in-memory
// session.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	// The same VN may be fetched more than once in a session; rowid keeps
	// insertion order and duplicates intact.
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS fetched (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		vn_id TEXT NOT NULL,
		title TEXT NOT NULL,
		rating REAL NOT NULL,
		votes INTEGER NOT NULL,
		released TEXT,
		languages TEXT,
		description TEXT,
		image_url TEXT,
		tags TEXT
	)`)
	return err
}

// Add appends one result to the session.
func (s *Store) Add(vn types.FormattedVN) error {
	languages, err := json.Marshal(vn.Languages)
	if err != nil {
		return fmt.Errorf("encoding languages: %w", err)
	}
	tags, err := json.Marshal(vn.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	var imageURL sql.NullString
	if vn.ImageURL != nil {
		imageURL = sql.NullString{String: *vn.ImageURL, Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO fetched (vn_id, title, rating, votes, released, languages, description, image_url, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vn.ID, vn.Title, vn.Rating, vn.Votes, vn.Released,
		string(languages), vn.Description, imageURL, string(tags),
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", vn.ID, err)
	}
	return nil
}

// AddAll appends results in order, stopping at the first failure.
func (s *Store) AddAll(vns []types.FormattedVN) error {
	for _, vn := range vns {
		if err := s.Add(vn); err != nil {
			return err
		}
	}
	return nil
}

// All returns every accumulated result in insertion order.
func (s *Store) All() ([]types.FormattedVN, error) {
	rows, err := s.db.Query(
		`SELECT vn_id, title, rating, votes, released, languages, description, image_url, tags
		 FROM fetched ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	defer rows.Close()

	var out []types.FormattedVN
	for rows.Next() {
		var vn types.FormattedVN
		var languages, tags string
		var imageURL sql.NullString
		if err := rows.Scan(&vn.ID, &vn.Title, &vn.Rating, &vn.Votes, &vn.Released,
			&languages, &vn.Description, &imageURL, &tags); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(languages), &vn.Languages); err != nil {
			return nil, fmt.Errorf("decoding languages: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &vn.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
		if imageURL.Valid {
			url := imageURL.String
			vn.ImageURL = &url
		}
		out = append(out, vn)
	}
	return out, rows.Err()
}

// Stats summarizes the session.
type Stats struct {
	Total     int
	AvgRating float64
	AvgVotes  float64
}

// Stats returns count and averages over the accumulated results. Averages
// are zero when the session is empty.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(rating), 0), COALESCE(AVG(votes), 0) FROM fetched`,
	).Scan(&st.Total, &st.AvgRating, &st.AvgVotes)
	if err != nil {
		return Stats{}, fmt.Errorf("computing session stats: %w", err)
	}
	return st, nil
}

// Clear discards all accumulated results.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM fetched`)
	return err
}
