// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists fetched article XML in a local SQLite database so
// repeated runs of the same query do not refetch unchanged records.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "fetch-cache.db"

// Store is the PMID-keyed record cache.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database under dir, creating the schema
// if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		pmid TEXT PRIMARY KEY,
		xml BLOB NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached record XML for pmid, or (nil, false) on a miss.
func (s *Store) Get(pmid string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT xml FROM records WHERE pmid = ?`, pmid).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", pmid, err)
	}
	return raw, true, nil
}

// Put stores (or replaces) the record XML for pmid.
func (s *Store) Put(pmid string, raw []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO records (pmid, xml, fetched_at) VALUES (?, ?, ?)`,
		pmid, raw, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", pmid, err)
	}
	return nil
}

// Len returns the number of cached records.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}
