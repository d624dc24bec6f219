// Package history implements the change journal for OptiGen projects.
//
// Every committed settings mutation is recorded as one row in a SQLite
// database under the user's home directory, so an agent can answer "what
// changed in this project and when" across sessions. The journal is an
// optional subsystem: if it fails to initialize, the settings tools keep
// working and simply skip recording.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Entry is one recorded mutation of a project's settings.
type Entry struct {
	ID        string `json:"id"`
	Directory string `json:"directory"`
	Operation string `json:"operation"`
	Entity    string `json:"entity"`
	Key       string `json:"key,omitempty"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Config holds journal configuration.
type Config struct {
	// DataDir is where history.db lives.
	DataDir string
	// MaxListed caps how many entries a single query returns.
	MaxListed int
}

// DefaultConfig returns the default journal configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:   filepath.Join(home, ".optigen"),
		MaxListed: 50,
	}
}

// Store is the journal backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) the journal database, applies pragmas, and runs
// the schema migration.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			directory  TEXT NOT NULL,
			operation  TEXT NOT NULL,
			entity     TEXT NOT NULL,
			key        TEXT NOT NULL DEFAULT '',
			detail     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_entries_dir     ON entries(directory);
		CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one entry to the journal. The ID and timestamp are
// assigned here; callers fill in the what and where.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (id, directory, operation, entity, key, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), e.Directory, e.Operation, e.Entity, e.Key, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// Recent returns the newest entries for one project directory, newest
// first. A non-positive limit falls back to the configured cap.
func (s *Store) Recent(directory string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.cfg.MaxListed {
		limit = s.cfg.MaxListed
	}

	rows, err := s.db.Query(`
		SELECT id, directory, operation, entity, key, detail, created_at
		FROM entries
		WHERE directory = ?
		ORDER BY created_at DESC, id
		LIMIT ?`,
		directory, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Directory, &e.Operation, &e.Entity, &e.Key, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return entries, nil
}
