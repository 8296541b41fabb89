// Package credstore persists the API credential and sweep run history in a
// SQLite database kept next to the binary.
package credstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "brandsweep.db"

// APIKeyName is the fixed credential name the sweep pipeline reads.
const APIKeyName = "geminiApiKey"

type Store struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database at the given path
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the store database next to the binary.
func Open() (*Store, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	return OpenAt(filepath.Join(filepath.Dir(execPath), DefaultDBName))
}

// OpenAt opens or creates the store database at an explicit path.
func OpenAt(dbPath string) (*Store, error) {
	sqlDB, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		DB:   sqlDB,
		path: dbPath,
	}

	// Auto-initialize schema if it doesn't exist
	if err := s.ensureSchemaExists(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// ensureSchemaExists checks if the schema exists and initializes it if not
func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='credentials'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return s.InitSchema()
	}

	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}

	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// InitSchema initializes the database schema
func (s *Store) InitSchema() error {
	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Get reads a named credential. An absent credential is not an error: the
// second return is false and the error nil.
func (s *Store) Get(name string) (string, bool, error) {
	var value string
	err := s.QueryRow("SELECT value FROM credentials WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read credential %q: %w", name, err)
	}
	return value, true, nil
}

// Set upserts a named credential and returns the stored value.
func (s *Store) Set(name, value string) (string, error) {
	_, err := s.Exec(`
		INSERT INTO credentials (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, name, value)
	if err != nil {
		return "", fmt.Errorf("failed to store credential %q: %w", name, err)
	}
	return value, nil
}
