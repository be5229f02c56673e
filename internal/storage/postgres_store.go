package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/waypointhq/waypoint-cli/internal/migration"
	"github.com/waypointhq/waypoint-cli/migrations"
)

// PostgresStore is the shared-database backend, selected by passing a
// postgres:// connection string as the config path.
type PostgresStore struct {
	stateStore
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{connStr: connStr}
	s.stateStore = stateStore{kv: s}
	return s
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.validateSchemaVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) migrationFS() (fs.FS, error) {
	return fs.Sub(migrations.FS, "postgres")
}

func (s *PostgresStore) runMigrations() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverPostgres)
	_, err = runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *PostgresStore) validateSchemaVersion() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.DriverPostgres)
	return runner.ValidateVersion()
}

func (s *PostgresStore) get(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(`
		INSERT INTO state (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, err := s.db.Exec("DELETE FROM state"); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

// IsPostgresConnString reports whether the config value selects the
// Postgres backend.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a postgres:// connection string
// carries a password inline. Embedded credentials are rejected at startup;
// the keyring, environment, or .pgpass should hold them instead.
func HasEmbeddedCredentials(connStr string) bool {
	if !IsPostgresConnString(connStr) {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		// Unparseable strings are treated as suspect.
		return true
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
