// Package config resolves runtime settings from TRAVELOGUE_* environment
// variables and command line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/travelogue/internal/constants"
)

// Config holds the resolved runtime settings
type Config struct {
	// Store is a sqlite path, a .json path, a postgres connection string,
	// or the literal "keyring" to read the connection string from the OS keyring.
	Store        string `env:"TRAVELOGUE_STORE"`
	DBConnection string `env:"TRAVELOGUE_DB_CONNECTION"`
	TablesPath   string `env:"TRAVELOGUE_TABLES"`
	Seed         int64  `env:"TRAVELOGUE_SEED"`
	Debug        bool   `env:"TRAVELOGUE_DEBUG"`
	NoBackup     bool   `env:"TRAVELOGUE_NO_BACKUP"`
}

// Overrides are command line values; zero values leave the env setting alone
type Overrides struct {
	Store      string
	TablesPath string
	Seed       int64
	Debug      bool
	NoBackup   bool
}

// Load parses the environment and applies the overrides on top
func Load(o Overrides) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if o.Store != "" {
		cfg.Store = o.Store
	}
	if o.TablesPath != "" {
		cfg.TablesPath = o.TablesPath
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	cfg.Debug = cfg.Debug || o.Debug
	cfg.NoBackup = cfg.NoBackup || o.NoBackup

	if cfg.Store == "" {
		cfg.Store = constants.DefaultConfigPath
	}
	if !IsPostgres(cfg.Store) && cfg.Store != KeyringStore {
		path, err := ExpandPath(cfg.Store)
		if err != nil {
			return Config{}, err
		}
		cfg.Store = path
	}
	if cfg.TablesPath != "" {
		path, err := ExpandPath(cfg.TablesPath)
		if err != nil {
			return Config{}, err
		}
		cfg.TablesPath = path
	}

	return cfg, nil
}

// KeyringStore selects a postgres store whose connection string lives in the OS keyring
const KeyringStore = "keyring"

// IsPostgres reports whether s is a postgres URL
func IsPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// IsJSON reports whether s names a JSON file store
func IsJSON(s string) bool {
	return strings.EqualFold(filepath.Ext(s), ".json")
}

// ConfigDir is where logs, backups and the lockfile live. File stores use
// their own directory; database servers fall back to the user config dir.
func (c Config) ConfigDir() string {
	if !IsPostgres(c.Store) && c.Store != KeyringStore {
		return filepath.Dir(c.Store)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName)
	}
	return filepath.Join(os.TempDir(), constants.AppName)
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
