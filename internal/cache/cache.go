// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists finished identity profiles in a local SQLite
// database keyed by normalized email. A fresh-enough snapshot
// short-circuits the whole pipeline; staleness is decided against the
// configured TTL at load time.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/identity-engine/pkg/types"
)

const dbFile = "identity.db"

// Store manages the profile snapshot database.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// now is stubbed in tests to exercise TTL expiry without sleeping.
var now = time.Now

// NewStore opens or creates the snapshot database at cfg.Dir/identity.db
// and ensures the schema exists.
func NewStore(cfg types.CacheConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: cfg.TTL}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS profiles (
		email TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save upserts the profile under its normalized email with the current
// timestamp.
func (s *Store) Save(ctx context.Context, profile types.Profile) error {
	body, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (email, profile, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
			profile=excluded.profile, fetched_at=excluded.fetched_at`,
		key(profile.Email), string(body), now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// Load returns the stored profile for the email, or ok=false when no
// fresh snapshot exists. A stale row is left in place; the next Save
// overwrites it.
func (s *Store) Load(ctx context.Context, email string) (types.Profile, bool, error) {
	var body, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile, fetched_at FROM profiles WHERE email = ?`, key(email),
	).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return types.Profile{}, false, nil
	}
	if err != nil {
		return types.Profile{}, false, fmt.Errorf("querying profile: %w", err)
	}

	stored, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return types.Profile{}, false, nil
	}
	if s.ttl > 0 && now().Sub(stored) > s.ttl {
		return types.Profile{}, false, nil
	}

	var profile types.Profile
	if err := json.Unmarshal([]byte(body), &profile); err != nil {
		return types.Profile{}, false, fmt.Errorf("decoding cached profile: %w", err)
	}
	return profile, true, nil
}

// Delete removes the snapshot for one email. Missing rows are not an
// error.
func (s *Store) Delete(ctx context.Context, email string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE email = ?`, key(email)); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

// Purge drops every stored snapshot and reports how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles`)
	if err != nil {
		return 0, fmt.Errorf("purging profiles: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// List returns the cached emails with their snapshot timestamps, newest
// first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, fetched_at FROM profiles ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		if err := rows.Scan(&e.Email, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Entry is one cached snapshot listing.
type Entry struct {
	Email     string
	FetchedAt time.Time
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
