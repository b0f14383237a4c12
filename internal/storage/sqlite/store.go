package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/migration"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/relational"
	"github.com/julianstephens/daybook/migrations"
)

var errNotInitialized = errors.New("storage not initialized, run 'daybook init' first")

type Store struct {
	relational.Queries
	path string
}

func NewStore(path string) *Store {
	return &Store{
		Queries: relational.Queries{Dialect: relational.SQLite, Now: time.Now},
		path:    path,
	}
}

// dsn enables foreign keys and a busy timeout on every pooled connection.
func (s *Store) dsn() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", s.path)
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)
	s.DB = db
	return nil
}

// Init creates the database file if needed, applies migrations and seeds defaults.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.DB == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.ensureDefaultSettings(); err != nil {
		return err
	}
	return storage.Seed(s)
}

// Load opens an existing database, checks its schema version and heals seed data.
func (s *Store) Load() error {
	if s.DB != nil {
		return nil
	}

	if err := s.ensureOpen(); err != nil {
		return err
	}

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}
	return storage.Seed(s)
}

// ensureOpen opens an existing database file without checking its schema.
func (s *Store) ensureOpen() error {
	if s.DB != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return errNotInitialized
	}
	return s.open()
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}

func (s *Store) ensureDefaultSettings() error {
	settings, err := s.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	if err := s.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.DB, subFS, migration.DialectSQLite), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// Migrate applies pending migrations, opening the database without the
// version check Load performs, and reports each step.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

// SchemaVersion returns the applied and latest available schema versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if err := s.ensureOpen(); err != nil {
		return 0, 0, err
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	latest, err = runner.GetLatestVersion()
	return current, latest, err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.DB
}
