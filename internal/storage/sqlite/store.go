package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/migration"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/migrations"
)

type Store struct {
	path  string
	db    *sql.DB
	clock clockwork.Clock
}

func NewStore(path string) *Store {
	return &Store{
		path:  path,
		clock: clockwork.NewRealClock(),
	}
}

// WithClock sets the clock used for updated_at and replaced_at timestamps
func (s *Store) WithClock(c clockwork.Clock) *Store {
	s.clock = c
	return s
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "store", s.path)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) now() string {
	return s.clock.Now().UTC().Format(constants.TimestampFormat)
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *Store) Put(key string, value []byte) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()

	var prev string
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&prev)
	switch {
	case err == nil:
		if _, err := tx.Exec(
			"INSERT INTO kv_history (key, value, replaced_at) VALUES (?, ?, ?)",
			key, prev, now,
		); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
		if _, err := tx.Exec(`
			DELETE FROM kv_history
			WHERE key = ? AND id NOT IN (
				SELECT id FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?
			)`, key, key, storage.MaxHistory); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Delete(key string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM kv_history WHERE key = ?", key); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Undo(key string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		id    int64
		value string
	)
	err = tx.QueryRow(
		"SELECT id, value FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT 1", key,
	).Scan(&id, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoHistory
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now(),
	); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM kv_history WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) HistoryLen(key string) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	var n int
	err := s.db.QueryRow("SELECT count(*) FROM kv_history WHERE key = ?", key).Scan(&n)
	return n, err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil until Init or Load has run.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
