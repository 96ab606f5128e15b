// Package generator rolls travelogue days from the roll tables.
//
// Generation is not seeded by the day index: with a real random source,
// generating the same index twice yields two unrelated days.
package generator

import (
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/random"
	"github.com/julianstephens/travelogue/internal/tables"
)

// GenerateDay rolls one day. index is only used as the day's ID.
func GenerateDay(src random.Source, t tables.Tables, index int) models.Day {
	return models.Day{
		ID:           index,
		Weather:      tables.RollWeather(src, t),
		DistanceSlow: tables.RollDistance(src, t.Slow),
		DistanceFast: tables.RollDistance(src, t.Fast),
		Direction:    tables.RollDirection(src, t),
		Encounter:    tables.RollEncounter(src, t),
		HasPassed:    false,
	}
}

// GenerateJourney rolls count days with IDs 0..count-1. Callers validate
// count; a non-positive count yields an empty journey.
func GenerateJourney(src random.Source, t tables.Tables, count int) []models.Day {
	if count < 0 {
		count = 0
	}
	days := make([]models.Day, count)
	for i := range days {
		days[i] = GenerateDay(src, t, i)
	}
	return days
}

// Generator binds a random source to a table set
type Generator struct {
	src    random.Source
	tables tables.Tables
}

// New creates a Generator. A nil source uses a freshly seeded one.
func New(src random.Source, t tables.Tables) *Generator {
	if src == nil {
		src = random.New()
	}
	return &Generator{src: src, tables: t}
}

// Day rolls a single day
func (g *Generator) Day(index int) models.Day {
	return GenerateDay(g.src, g.tables, index)
}

// Journey rolls a whole journey
func (g *Generator) Journey(count int) []models.Day {
	return GenerateJourney(g.src, g.tables, count)
}

// Tables returns the tables the generator rolls on
func (g *Generator) Tables() tables.Tables {
	return g.tables
}
