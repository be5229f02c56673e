package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/waypointhq/waypoint-cli/internal/migration"
	"github.com/waypointhq/waypoint-cli/migrations"
)

// SQLiteStore is the default durable-storage backend.
type SQLiteStore struct {
	stateStore
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	s := &SQLiteStore{path: path}
	s.stateStore = stateStore{kv: s}
	return s
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'waypoint init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Validate schema version using embedded migrations
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrationFS() (fs.FS, error) {
	return fs.Sub(migrations.FS, "sqlite")
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverSQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverSQLite)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) get(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(`
		INSERT INTO state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, err := s.db.Exec("DELETE FROM state"); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
