// Package store is the daemon's persistent key/value store, backed by
// sqlite. It holds the three feature flags, the niche keywords, and one
// reply counter per calendar date (key `replyCount_YYYY-MM-DD`).
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// Storage keys shared with the config watcher and the reply tracker.
const (
	KeyScoring     = "enableScoring"
	KeyNicheFilter = "enableNicheFilter"
	KeyQuickStats  = "enableQuickStats"
	KeyKeywords    = "nicheKeywords"

	replyCountPrefix = "replyCount_"
)

// ReplyCountKey returns the counter key for a date string (YYYY-MM-DD).
func ReplyCountKey(date string) string {
	return replyCountPrefix + date
}

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the values for the given keys. Missing keys are simply
// absent from the result map.
func (s *Store) Get(keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		var value string
		err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		result[key] = value
	}
	return result, nil
}

// Set writes all key/value pairs, replacing existing values.
func (s *Store) Set(items map[string]string) error {
	for key, value := range items {
		_, err := s.db.Exec(`
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, key, value)
		if err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}
	return nil
}

// Remove deletes the given keys. Removing a missing key is not an error.
func (s *Store) Remove(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("remove %q: %w", key, err)
		}
	}
	return nil
}

// GetBool reads a boolean flag. Missing keys return the fallback, so a
// fresh database behaves like the defaults.
func (s *Store) GetBool(key string, fallback bool) (bool, error) {
	values, err := s.Get(key)
	if err != nil {
		return fallback, err
	}
	raw, ok := values[key]
	if !ok {
		return fallback, nil
	}
	return raw == "true", nil
}

// SetBool writes a boolean flag.
func (s *Store) SetBool(key string, value bool) error {
	return s.Set(map[string]string{key: strconv.FormatBool(value)})
}

// GetKeywords returns the stored niche keywords, or an empty slice.
func (s *Store) GetKeywords() ([]string, error) {
	values, err := s.Get(KeyKeywords)
	if err != nil {
		return nil, err
	}
	raw, ok := values[KeyKeywords]
	if !ok {
		return []string{}, nil
	}

	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	return keywords, nil
}

// SetKeywords replaces the stored niche keywords wholesale.
func (s *Store) SetKeywords(keywords []string) error {
	data, err := json.Marshal(keywords)
	if err != nil {
		return err
	}
	return s.Set(map[string]string{KeyKeywords: string(data)})
}

// IncrementReplyCount adds one to the counter for the given date.
func (s *Store) IncrementReplyCount(date string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, '1', CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = CAST(CAST(value AS INTEGER) + 1 AS TEXT),
			updated_at = CURRENT_TIMESTAMP
	`, ReplyCountKey(date))
	return err
}

// ReplyCount returns the counter for one date, 0 if absent.
func (s *Store) ReplyCount(date string) (int, error) {
	stats, err := s.ReplyStats([]string{date})
	if err != nil {
		return 0, err
	}
	return stats[date], nil
}

// ReplyStats returns counters for several dates, 0 for absent ones.
func (s *Store) ReplyStats(dates []string) (map[string]int, error) {
	keys := make([]string, len(dates))
	for i, date := range dates {
		keys[i] = ReplyCountKey(date)
	}

	values, err := s.Get(keys...)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(dates))
	for _, date := range dates {
		n, _ := strconv.Atoi(values[ReplyCountKey(date)])
		stats[date] = n
	}
	return stats, nil
}

// TotalReplies sums the counters for the given dates.
func (s *Store) TotalReplies(dates []string) (int, error) {
	stats, err := s.ReplyStats(dates)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range stats {
		total += n
	}
	return total, nil
}
