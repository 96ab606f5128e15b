package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/travelogue/internal/backup"
	"github.com/julianstephens/travelogue/internal/config"
	"github.com/julianstephens/travelogue/internal/generator"
	"github.com/julianstephens/travelogue/internal/journey"
	"github.com/julianstephens/travelogue/internal/keyring"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/internal/storage/postgres"
	"github.com/julianstephens/travelogue/internal/storage/sqlite"
)

// Context is handed to every command's Run method
type Context struct {
	Store     storage.Provider
	Generator *generator.Generator
	Config    config.Config
	Out       io.Writer
	In        io.Reader
}

// Stdout returns the command output writer
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Stdin returns the command input reader
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// OpenStore picks a storage provider for the configured store. Connection
// strings given on the command line must not carry a password; the
// environment and the OS keyring may.
func OpenStore(cfg config.Config) (storage.Provider, error) {
	switch {
	case cfg.DBConnection != "":
		return postgres.New(cfg.DBConnection), nil
	case cfg.Store == config.KeyringStore:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring, use 'travelogue keyring set' to store one")
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	case config.IsPostgres(cfg.Store):
		if err := postgres.ValidateConnString(cfg.Store); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use TRAVELOGUE_DB_CONNECTION, the OS keyring ('travelogue keyring set') or ~/.pgpass instead", err)
			}
			return nil, err
		}
		return postgres.New(cfg.Store), nil
	case config.IsJSON(cfg.Store):
		return storage.NewJSONStore(cfg.Store), nil
	default:
		return sqlite.NewStore(cfg.Store), nil
	}
}

// LoadState returns the stored journey. The first load of an empty store
// rolls and saves a journey of the default length, and a stored journey
// that breaks the journey invariants is rerolled.
func (c *Context) LoadState() (models.State, error) {
	s, err := storage.GetState(c.Store)
	if errors.Is(err, storage.ErrNoState) {
		s = journey.Default(c.Generator)
		logger.Info("Generated initial journey", "days", s.DayCount)
		return s, c.SaveState(s)
	}
	if err != nil {
		return models.State{}, err
	}

	if err := journey.Check(s); err != nil {
		logger.Warn("Stored journey is inconsistent, rerolling", "error", err)
		journey.Regenerate(&s, c.Generator)
		return s, c.SaveState(s)
	}
	return s, nil
}

// SaveState persists the journey
func (c *Context) SaveState(s models.State) error {
	return storage.SaveState(c.Store, s)
}

// Backups returns a backup manager when the store is a sqlite file
func (c *Context) Backups() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup snapshots the store before destructive changes.
// Failures are logged and never block the caller.
func (c *Context) PerformAutomaticBackup() {
	if c.Config.NoBackup {
		return
	}
	mgr, ok := c.Backups()
	if !ok {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on the command streams
func (c *Context) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.Stdout(), "%s [y/N]: ", question)
	response, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
