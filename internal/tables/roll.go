package tables

import (
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/random"
)

// RollWeather draws a weather category using the table weights
func RollWeather(src random.Source, t Tables) models.Weather {
	weights := make([]int, len(t.Weather))
	for i, e := range t.Weather {
		weights[i] = e.Weight
	}
	return t.Weather[random.Weighted(src, weights)].Weather
}

// RollDistance draws a uniform distance from r
func RollDistance(src random.Source, r Range) int {
	return random.Between(src, r.Min, r.Max)
}

// RollDirection draws a uniform direction
func RollDirection(src random.Source, t Tables) models.Direction {
	return t.Directions[src.Intn(len(t.Directions))]
}

// RollEncounter makes the daily encounter check. It returns "" when the
// gate roll falls below the threshold; the entry is only drawn on a hit.
func RollEncounter(src random.Source, t Tables) string {
	e := t.Encounter
	if random.Roll(src, e.Die) < e.Threshold {
		return ""
	}
	return e.Entries[src.Intn(len(e.Entries))]
}
