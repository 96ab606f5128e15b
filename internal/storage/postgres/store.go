package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	pq "github.com/lib/pq"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/migration"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
	clock   clockwork.Clock
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
		clock:   clockwork.NewRealClock(),
	}
	s.ensureSearchPath()
	return s
}

// WithClock sets the clock used for updated_at and replaced_at timestamps
func (s *Store) WithClock(c clockwork.Clock) *Store {
	s.clock = c
	return s
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

func (s *Store) ensureSearchPath() {
	if isURL(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasParam reports whether a DSN-style connection string sets key (case-insensitive)
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks both URL and DSN connection strings for an sslmode parameter
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasParam(connStr, "sslmode")
}

// ValidateConnString checks that connStr is a PostgreSQL URI or DSN that
// does not carry a password. Passwords belong in ~/.pgpass or PGPASSWORD.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if hasParam(connStr, "password") {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (s *Store) Init() error {
	if s.db == nil {
		db, err := s.open()
		if err != nil {
			return err
		}
		s.db = db
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
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

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	var exists bool
	if err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = 'kv')",
		constants.AppName,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return storage.ErrNotInitialized
	}

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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.Postgres), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "store", "postgresql")
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

const upsertSQL = `
	INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

func (s *Store) Get(key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = $1", key).Scan(&value)
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
	err = tx.QueryRow("SELECT value FROM kv WHERE key = $1 FOR UPDATE", key).Scan(&prev)
	switch {
	case err == nil:
		if _, err := tx.Exec(
			"INSERT INTO kv_history (key, value, replaced_at) VALUES ($1, $2, $3)",
			key, prev, now,
		); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
		if _, err := tx.Exec(`
			DELETE FROM kv_history
			WHERE key = $1 AND id NOT IN (
				SELECT id FROM kv_history WHERE key = $1 ORDER BY id DESC LIMIT $2
			)`, key, storage.MaxHistory); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return err
	}

	if _, err := tx.Exec(upsertSQL, key, string(value), now); err != nil {
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

	res, err := tx.Exec("DELETE FROM kv WHERE key = $1", key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM kv_history WHERE key = $1", key); err != nil {
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
		"SELECT id, value FROM kv_history WHERE key = $1 ORDER BY id DESC LIMIT 1 FOR UPDATE", key,
	).Scan(&id, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoHistory
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(upsertSQL, key, value, s.now()); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM kv_history WHERE id = $1", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) HistoryLen(key string) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	var n int
	err := s.db.QueryRow("SELECT count(*) FROM kv_history WHERE key = $1", key).Scan(&n)
	return n, err
}

func (s *Store) GetConfigPath() string {
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}
