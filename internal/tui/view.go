package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/journey"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDayCount:
		content = m.form.View()
	case constants.StateConfirmRegenerate:
		content = m.viewConfirm()
	default:
		content = m.viewJourney()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Travelogue"),
		"",
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewJourney() string {
	parts := []string{m.table.View(), m.viewSummary()}
	if m.showLegend {
		parts = append(parts, m.viewLegend())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewSummary() string {
	sum := journey.Summarize(m.journey)
	return subtleStyle.Render(fmt.Sprintf(
		"%d/%d days passed · %d encounters · %d hexes slow · %d hexes fast",
		sum.Passed, sum.Days, sum.Encounters, sum.SlowHexes, sum.FastHexes,
	))
}

// viewLegend explains each weather result and how often it came up
func (m Model) viewLegend() string {
	sum := journey.Summarize(m.journey)
	var b strings.Builder
	b.WriteString("Weather key\n")
	t := m.gen.Tables()
	for i, e := range t.Weather {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-15s %3d days  %s", e.Weather, sum.Weather[e.Weather], e.Note)
	}
	return legendStyle.Render(b.String())
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, max(m.height-chrome, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirm),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}
