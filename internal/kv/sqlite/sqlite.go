// Package sqlite implements kv.Store on SQLite via Turso/libSQL.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calahan-dev/dailyctl/internal/kv"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements kv.Store using a single key-value table.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite key-value backend under dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", kv.ErrUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, "dailyctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", kv.ErrUnavailable, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", kv.ErrUnavailable, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", kv.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	row := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: querying key %q: %v", kv.ErrStorage, key, err)
	}
	return value, true, nil
}

// Set upserts every key in kvs inside a single transaction.
func (s *Store) Set(kvs map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", kv.ErrStorage, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range kvs {
		_, err := tx.Exec(
			"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) "+
				"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
			key, value, now,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: writing key %q: %v", kv.ErrStorage, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing write: %v", kv.ErrStorage, err)
	}
	return nil
}
