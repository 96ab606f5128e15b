package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/travelogue/internal/cli"
	"github.com/julianstephens/travelogue/internal/lock"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.Config.ConfigDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lockfile", "path", l.Path(), "error", err)
		}
	}()

	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	m := tui.NewModel(ctx.Store, ctx.Generator, s, tui.WithBeforeRegenerate(ctx.PerformAutomaticBackup))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
