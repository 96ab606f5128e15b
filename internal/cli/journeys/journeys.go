// Package journeys holds the commands that read and change the journey.
package journeys

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/travelogue/internal/cli"
	"github.com/julianstephens/travelogue/internal/journey"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/storage"
)

type GenerateCmd struct {
	Days *int `help:"Number of days to generate (1-365). Defaults to the current day count."`
	Yes  bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	if c.Days != nil {
		if err := journey.ValidateDayCount(*c.Days); err != nil {
			return err
		}
	}

	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	if !c.Yes && journey.Passed(s) > 0 {
		ok, err := ctx.Confirm(fmt.Sprintf("%d days are marked as passed. Regenerate the whole journey?", journey.Passed(s)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Stdout(), "Regeneration cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if c.Days != nil {
		journey.SetDayCount(&s, ctx.Generator, *c.Days)
	} else {
		journey.Regenerate(&s, ctx.Generator)
	}
	if err := ctx.SaveState(s); err != nil {
		return err
	}

	logger.Info("Regenerated journey", "days", s.DayCount)
	fmt.Fprintf(ctx.Stdout(), "✓ Generated a %d day journey\n", s.DayCount)
	fmt.Fprintln(ctx.Stdout(), RenderSummary(s))
	return nil
}

type ShowCmd struct {
	All  bool `short:"a" help:"Include days that have passed."`
	JSON bool `help:"Print the stored journey as JSON."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.Stdout(), string(data))
		return nil
	}

	fmt.Fprintln(ctx.Stdout(), RenderJourney(s, c.All))
	fmt.Fprintln(ctx.Stdout(), RenderSummary(s))
	return nil
}

type ToggleCmd struct {
	Days []int `arg:"" name:"day" help:"Day numbers to mark as passed or not passed."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	// Apply to a copy so an unknown day leaves the journey untouched
	next := s.Clone()
	for _, n := range c.Days {
		if err := journey.Toggle(&next, n-1); err != nil {
			return fmt.Errorf("day %d: %w", n, err)
		}
	}
	if err := ctx.SaveState(next); err != nil {
		return err
	}

	for _, n := range c.Days {
		d := next.Journey[n-1]
		state := "not passed"
		if d.HasPassed {
			state = "passed"
		}
		fmt.Fprintf(ctx.Stdout(), "Day %d marked %s\n", n, state)
	}
	return nil
}

type NextCmd struct{}

func (c *NextCmd) Run(ctx *cli.Context) error {
	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	d, ok := journey.Next(s)
	if !ok {
		fmt.Fprintln(ctx.Stdout(), "Every day of this journey has passed.")
		return nil
	}
	if err := journey.Toggle(&s, d.ID); err != nil {
		return err
	}
	if err := ctx.SaveState(s); err != nil {
		return err
	}

	fmt.Fprintln(ctx.Stdout(), RenderDay(d))
	fmt.Fprintf(ctx.Stdout(), "%d days remaining\n", journey.Remaining(s))
	return nil
}

type DaysCmd struct {
	Count string `arg:"" help:"New number of days (1-365). The journey is regenerated."`
}

func (c *DaysCmd) Run(ctx *cli.Context) error {
	n, err := journey.ParseDayCount(c.Count)
	if err != nil {
		return err
	}

	s, err := ctx.LoadState()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	journey.SetDayCount(&s, ctx.Generator, n)
	if err := ctx.SaveState(s); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Journey regenerated with %d days\n", n)
	return nil
}

type UndoCmd struct{}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	s, err := storage.UndoState(ctx.Store)
	if err != nil {
		if errors.Is(err, storage.ErrNoHistory) {
			return errors.New("nothing to undo")
		}
		return err
	}
	fmt.Fprintln(ctx.Stdout(), "✓ Restored the previous journey")
	fmt.Fprintln(ctx.Stdout(), RenderSummary(s))
	return nil
}

type TablesCmd struct{}

func (c *TablesCmd) Run(ctx *cli.Context) error {
	t := ctx.Generator.Tables()
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.Stdout(), string(data))
	fmt.Fprintf(ctx.Stdout(), "# encounter chance per day: %.0f%%\n", t.EncounterChance()*100)
	return nil
}
