package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/generator"
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/internal/tui/components/daytable"
)

// DayCountFormModel backs the day count input
type DayCountFormModel struct {
	Count string
}

type Model struct {
	store      storage.Provider
	gen        *generator.Generator
	journey    models.State
	state      constants.SessionState
	keys       KeyMap
	help       help.Model
	table      daytable.Model
	form       *huh.Form
	dayCount   *DayCountFormModel
	pending    func() tea.Cmd
	confirm    string
	showLegend bool
	status     string
	err        error
	quitting   bool
	width      int
	height     int

	// beforeRegenerate runs before the journey is replaced wholesale
	beforeRegenerate func()
}

// Option configures a Model
type Option func(*Model)

// WithBeforeRegenerate sets a hook that runs before every regeneration
func WithBeforeRegenerate(fn func()) Option {
	return func(m *Model) {
		m.beforeRegenerate = fn
	}
}

func NewModel(store storage.Provider, gen *generator.Generator, s models.State, opts ...Option) Model {
	m := Model{
		store:   store,
		gen:     gen,
		journey: s,
		state:   constants.StateJourney,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		table:   daytable.New(0, 20),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.table.SetDays(m.journey.Journey)
	return m
}

// Journey returns the state currently shown
func (m Model) Journey() models.State {
	return m.journey
}

func (m Model) Init() tea.Cmd {
	return nil
}

// save persists the journey after every change
func (m *Model) save() {
	m.table.SetDays(m.journey.Journey)
	if err := storage.SaveState(m.store, m.journey); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m *Model) newDayCountForm() *huh.Form {
	m.dayCount = &DayCountFormModel{Count: strconv.Itoa(m.journey.DayCount)}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of days").
				Description("Between 1 and 365. The journey is regenerated.").
				CharLimit(3).
				Value(&m.dayCount.Count),
		),
	).WithShowHelp(false)
}
