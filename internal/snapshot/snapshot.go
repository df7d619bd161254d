// Package snapshot provides a SQLite-backed cache of the last financial
// data fetch, so the dashboard can render something when the network or
// session is unavailable.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"moneytrack/internal/finance"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNoSnapshot indicates nothing has been cached yet.
var ErrNoSnapshot = errors.New("snapshot: no cached data")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshot (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    account    TEXT NOT NULL DEFAULT '',
    fetched_at TEXT NOT NULL,
    payload    BLOB NOT NULL
);
`

// Cache stores the most recent financial data snapshot.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save replaces the cached snapshot with the given one.
func (c *Cache) Save(account string, data *finance.FinancialData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = c.db.Exec(`INSERT OR REPLACE INTO snapshot (id, account, fetched_at, payload)
		VALUES (1, ?, ?, ?)`,
		account, time.Now().UTC().Format(time.RFC3339), payload)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot, its account label, and when it was
// fetched. Returns ErrNoSnapshot if nothing is cached.
func (c *Cache) Load() (*finance.FinancialData, string, time.Time, error) {
	var account, fetchedAt string
	var payload []byte

	err := c.db.QueryRow("SELECT account, fetched_at, payload FROM snapshot WHERE id = 1").
		Scan(&account, &fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("loading snapshot: %w", err)
	}

	var data finance.FinancialData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	at, _ := time.Parse(time.RFC3339, fetchedAt)
	return &data, account, at, nil
}

// Clear drops the cached snapshot, e.g. on logout.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM snapshot")
	return err
}
