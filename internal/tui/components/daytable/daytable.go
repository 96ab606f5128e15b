package daytable

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/travelogue/internal/models"
)

var columns = []table.Column{
	{Title: "Day", Width: 5},
	{Title: "Weather", Width: 15},
	{Title: "Slow", Width: 6},
	{Title: "Fast", Width: 6},
	{Title: "If lost", Width: 8},
	{Title: "Encounter", Width: 28},
	{Title: "Passed", Width: 6},
}

// Model is the scrollable table of journey days
type Model struct {
	table table.Model
	days  []models.Day
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{table: t}
}

// SetDays replaces the rows, keeping the cursor where it was when possible
func (m *Model) SetDays(days []models.Day) {
	m.days = days
	rows := make([]table.Row, len(days))
	for i, d := range days {
		rows[i] = row(d)
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	switch {
	case len(rows) == 0:
		m.table.SetCursor(0)
	case cursor >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	default:
		m.table.SetCursor(cursor)
	}
}

func row(d models.Day) table.Row {
	encounter := d.Encounter
	if encounter == "" {
		encounter = "-"
	}
	passed := "[ ]"
	if d.HasPassed {
		passed = "[x]"
	}
	return table.Row{
		strconv.Itoa(d.ID + 1),
		string(d.Weather),
		fmt.Sprintf("%d", d.DistanceSlow),
		fmt.Sprintf("%d", d.DistanceFast),
		string(d.Direction),
		encounter,
		passed,
	}
}

// Selected returns the day under the cursor
func (m Model) Selected() (models.Day, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.days) {
		return models.Day{}, false
	}
	return m.days[i], true
}

// Cursor returns the row index under the cursor
func (m Model) Cursor() int {
	return m.table.Cursor()
}

// GoTo moves the cursor to the given row
func (m *Model) GoTo(i int) {
	if i >= 0 && i < len(m.days) {
		m.table.SetCursor(i)
	}
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	if height > 0 {
		m.table.SetHeight(height)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.days) == 0 {
		return "\n  This journey has no days."
	}
	return m.table.View()
}
