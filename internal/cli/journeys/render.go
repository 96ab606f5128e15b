package journeys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/travelogue/internal/journey"
	"github.com/julianstephens/travelogue/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passedStyle = cellStyle.Foreground(lipgloss.Color("241")).Strikethrough(true)
)

// DayNumber is the 1-based number a day is shown and addressed by
func DayNumber(d models.Day) int {
	return d.ID + 1
}

// RenderJourney draws the journey as a table. Passed days are dimmed, or
// left out unless all is set.
func RenderJourney(s models.State, all bool) string {
	var (
		rows   [][]string
		passed []bool
	)
	for _, d := range s.Journey {
		if d.HasPassed && !all {
			continue
		}
		rows = append(rows, dayRow(d))
		passed = append(passed, d.HasPassed)
	}

	if len(rows) == 0 {
		return "Every day of this journey has passed."
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("Day", "Weather", "Slow", "Fast", "If lost", "Encounter", "Passed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(passed) && passed[row]:
				return passedStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func dayRow(d models.Day) []string {
	encounter := d.Encounter
	if encounter == "" {
		encounter = "-"
	}
	check := ""
	if d.HasPassed {
		check = "x"
	}
	return []string{
		strconv.Itoa(DayNumber(d)),
		string(d.Weather),
		hexes(d.DistanceSlow),
		hexes(d.DistanceFast),
		string(d.Direction),
		encounter,
		check,
	}
}

func hexes(n int) string {
	if n == 1 {
		return "1 hex"
	}
	return fmt.Sprintf("%d hexes", n)
}

// RenderSummary is the one line status shown under a journey
func RenderSummary(s models.State) string {
	sum := journey.Summarize(s)
	return fmt.Sprintf("%d/%d days passed, %d encounters, %d hexes at slow pace, %d at fast pace",
		sum.Passed, sum.Days, sum.Encounters, sum.SlowHexes, sum.FastHexes)
}

// RenderDay describes a single day on one line
func RenderDay(d models.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d: %s, %s slow / %s fast, %s if lost",
		DayNumber(d), d.Weather, hexes(d.DistanceSlow), hexes(d.DistanceFast), d.Direction)
	if d.HasEncounter() {
		fmt.Fprintf(&b, ", encounter: %s", d.Encounter)
	}
	return b.String()
}
