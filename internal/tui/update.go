package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/journey"
	"github.com/julianstephens/travelogue/internal/logger"
	"github.com/julianstephens/travelogue/internal/storage"
)

type regenerateMsg struct{}

// chrome is the number of lines around the table: title, summary, status and help
const chrome = 9

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetSize(msg.Width-4, m.tableHeight())
		return m, nil

	case constants.ConfirmationMsg:
		m.confirm = msg.Message
		m.pending = msg.Action
		m.state = constants.StateConfirmRegenerate
		return m, nil

	case regenerateMsg:
		m.regenerate()
		return m, nil
	}

	switch m.state {
	case constants.StateDayCount:
		return m.updateDayCount(msg)
	case constants.StateConfirmRegenerate:
		return m.updateConfirm(msg)
	}
	return m.updateJourney(msg)
}

func (m Model) tableHeight() int {
	h := m.height - chrome
	if m.showLegend {
		h -= len(m.gen.Tables().Weather) + 2
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) updateJourney(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Legend):
		m.showLegend = !m.showLegend
		m.table.SetSize(m.width-4, m.tableHeight())
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if d, ok := m.table.Selected(); ok {
			m.toggle(d.ID)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Next):
		d, ok := journey.Next(m.journey)
		if !ok {
			m.status = "Every day of this journey has passed."
			return m, nil
		}
		m.toggle(d.ID)
		m.table.GoTo(d.ID)
		return m, nil

	case key.Matches(keyMsg, m.keys.Regenerate):
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Regenerate all %d days? Passed marks will be cleared.", m.journey.DayCount),
				Action: func() tea.Cmd {
					return func() tea.Msg { return regenerateMsg{} }
				},
			}
		}

	case key.Matches(keyMsg, m.keys.DayCount):
		m.form = m.newDayCountForm()
		m.state = constants.StateDayCount
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Undo):
		m.undo()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch keyMsg.String() {
	case "y", "Y":
		if m.pending != nil {
			cmd = m.pending()
		}
	case "n", "N", "esc", "q":
	default:
		return m, nil
	}
	m.pending = nil
	m.confirm = ""
	m.state = constants.StateJourney
	return m, cmd
}

func (m Model) updateDayCount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = constants.StateJourney
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyDayCount(m.dayCount.Count)
		m.state = constants.StateJourney
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = constants.StateJourney
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) toggle(id int) {
	if err := journey.Toggle(&m.journey, id); err != nil {
		m.err = err
		return
	}
	d := m.journey.Journey[id]
	if d.HasPassed {
		m.status = fmt.Sprintf("Day %d passed", id+1)
	} else {
		m.status = fmt.Sprintf("Day %d not passed", id+1)
	}
	m.save()
}

func (m *Model) regenerate() {
	if m.beforeRegenerate != nil {
		m.beforeRegenerate()
	}
	journey.Regenerate(&m.journey, m.gen)
	m.status = fmt.Sprintf("Generated a new %d day journey", m.journey.DayCount)
	logger.Info("Regenerated journey from TUI", "days", m.journey.DayCount)
	m.save()
}

// applyDayCount regenerates with the entered count. Input that is not a
// number in range is ignored and the journey is left as it was.
func (m *Model) applyDayCount(input string) bool {
	n, err := journey.ParseDayCount(input)
	if err != nil {
		logger.Debug("Ignoring day count", "input", input, "error", err)
		return false
	}
	if m.beforeRegenerate != nil {
		m.beforeRegenerate()
	}
	journey.SetDayCount(&m.journey, m.gen, n)
	m.status = fmt.Sprintf("Generated a new %d day journey", n)
	m.save()
	return true
}

func (m *Model) undo() {
	s, err := storage.UndoState(m.store)
	if errors.Is(err, storage.ErrNoHistory) {
		m.status = "Nothing to undo"
		return
	}
	if err != nil {
		m.err = err
		return
	}
	m.journey = s
	m.table.SetDays(s.Journey)
	m.status = "Restored the previous journey"
	m.err = nil
}
