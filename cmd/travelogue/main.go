package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/travelogue/internal/cli"
	"github.com/julianstephens/travelogue/internal/cli/backups"
	"github.com/julianstephens/travelogue/internal/cli/journeys"
	"github.com/julianstephens/travelogue/internal/cli/system"
	"github.com/julianstephens/travelogue/internal/config"
	"github.com/julianstephens/travelogue/internal/constants"
	apperrors "github.com/julianstephens/travelogue/internal/errors"
	"github.com/julianstephens/travelogue/internal/generator"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/random"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/internal/tables"
)

type CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store: sqlite path, .json path, postgres URL or 'keyring'." env:"TRAVELOGUE_STORE"`
	Tables   string `help:"YAML file overriding the roll tables." type:"path"`
	Seed     int64  `help:"Seed for reproducible journeys."`
	Debug    bool   `help:"Enable debug logging."`
	NoBackup bool   `help:"Skip the automatic backup before regenerating."`

	Init       system.InitCmd       `cmd:"" help:"Initialize travelogue storage."`
	Tui        system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Generate   journeys.GenerateCmd `cmd:"" help:"Reroll the whole journey."`
	Show       journeys.ShowCmd     `cmd:"" help:"Print the journey."`
	Toggle     journeys.ToggleCmd   `cmd:"" help:"Mark days as passed or not passed."`
	Next       journeys.NextCmd     `cmd:"" help:"Mark the next day as passed."`
	Days       journeys.DaysCmd     `cmd:"" help:"Change the number of days."`
	Undo       journeys.UndoCmd     `cmd:"" help:"Restore the journey before the last change."`
	RollTables journeys.TablesCmd   `cmd:"" name:"tables" help:"Print the roll tables in effect."`
	Backup     struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage sqlite backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stdin); err != nil {
		apperrors.Fatal(err)
	}
}

func run(args []string, stdout io.Writer, stdin io.Reader) error {
	var app CLI
	parser, err := kong.New(&app,
		kong.Name(constants.AppName),
		kong.Description("Hex-crawl travelogue generator for jungle journeys"),
		kong.UsageOnError(),
		kong.Writers(stdout, os.Stderr),
		kong.Vars{"version": constants.Version},
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.Overrides{
		Store:      app.Config,
		TablesPath: app.Tables,
		Seed:       app.Seed,
		Debug:      app.Debug,
		NoBackup:   app.NoBackup,
	})
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	t, err := tables.Load(cfg.TablesPath)
	if err != nil {
		return err
	}

	src := random.New()
	if cfg.Seed != 0 {
		src = random.NewSeeded(cfg.Seed)
		logger.Debug("Using fixed seed", "seed", cfg.Seed)
	}

	store, err := cli.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			if !errors.Is(err, storage.ErrNotInitialized) {
				return err
			}
			logger.Info("Store not initialized, creating it", "path", store.GetConfigPath())
			if err := store.Init(); err != nil {
				return err
			}
		}
	}

	return ctx.Run(&cli.Context{
		Store:     store,
		Generator: generator.New(src, t),
		Config:    cfg,
		Out:       stdout,
		In:        stdin,
	})
}

// needsStore reports whether a command reads the journey. init opens the
// store itself and keyring commands never touch it.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring")
}
