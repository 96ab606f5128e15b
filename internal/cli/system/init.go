package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/travelogue/internal/cli"
	"github.com/julianstephens/travelogue/internal/config"
	"github.com/julianstephens/travelogue/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Discard any existing journey before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "Initialized travelogue storage at: %s\n", ctx.Store.GetConfigPath())

	s, err := ctx.LoadState()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "Journey ready: %d days\n", s.DayCount)
	return nil
}

// reset removes a file store, or clears the journey from a database server
func (c *InitCmd) reset(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if config.IsPostgres(ctx.Config.Store) || ctx.Config.Store == config.KeyringStore || ctx.Config.DBConnection != "" {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		if err := storage.ClearState(ctx.Store); err != nil {
			return err
		}
		fmt.Fprintln(ctx.Stdout(), "Cleared existing journey")
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Fprintf(ctx.Stdout(), "Deleted existing database at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
