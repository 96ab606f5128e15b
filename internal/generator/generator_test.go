package generator

import (
	"math"
	"testing"

	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/random"
	"github.com/julianstephens/travelogue/internal/tables"
)

func TestGenerateJourneyLengthAndIDs(t *testing.T) {
	tbl := tables.Default()
	src := random.NewSeeded(2024)

	for _, count := range []int{1, 2, 79, 364, 365} {
		days := GenerateJourney(src, tbl, count)
		if len(days) != count {
			t.Fatalf("GenerateJourney(%d) returned %d days", count, len(days))
		}
		for i, d := range days {
			if d.ID != i {
				t.Fatalf("GenerateJourney(%d)[%d].ID = %d", count, i, d.ID)
			}
		}
	}
}

func TestGenerateJourneySingleDay(t *testing.T) {
	days := GenerateJourney(random.New(), tables.Default(), 1)
	if len(days) != 1 || days[0].ID != 0 {
		t.Fatalf("GenerateJourney(1) = %+v, want one day with id 0", days)
	}
}

func TestGenerateJourneyNonPositive(t *testing.T) {
	if days := GenerateJourney(random.New(), tables.Default(), -3); len(days) != 0 {
		t.Errorf("GenerateJourney(-3) returned %d days, want 0", len(days))
	}
}

func TestGeneratedDaysRespectTables(t *testing.T) {
	tbl := tables.Default()
	days := GenerateJourney(random.NewSeeded(1), tbl, 365)

	for _, d := range days {
		if !tbl.HasWeather(d.Weather) {
			t.Errorf("day %d: weather %q not in table", d.ID, d.Weather)
		}
		if !tbl.HasDirection(d.Direction) {
			t.Errorf("day %d: direction %q not in table", d.ID, d.Direction)
		}
		if d.DistanceSlow < tbl.Slow.Min || d.DistanceSlow > tbl.Slow.Max {
			t.Errorf("day %d: slow distance %d outside [%d,%d]", d.ID, d.DistanceSlow, tbl.Slow.Min, tbl.Slow.Max)
		}
		if d.DistanceFast < tbl.Fast.Min || d.DistanceFast > tbl.Fast.Max {
			t.Errorf("day %d: fast distance %d outside [%d,%d]", d.ID, d.DistanceFast, tbl.Fast.Min, tbl.Fast.Max)
		}
		if d.HasPassed {
			t.Errorf("day %d: HasPassed = true right after generation", d.ID)
		}
		if d.HasEncounter() {
			found := false
			for _, e := range tbl.Encounter.Entries {
				if e == d.Encounter {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("day %d: encounter %q not in table", d.ID, d.Encounter)
			}
		}
	}
}

func TestGenerateDayUsesIndexOnlyAsID(t *testing.T) {
	src := random.NewSequence(0, 0, 0, 0, 19, 5)
	d := GenerateDay(src, tables.Default(), 41)

	want := models.Day{
		ID:           41,
		Weather:      models.WeatherClear,
		DistanceSlow: 1,
		DistanceFast: 2,
		Direction:    models.DirectionNorth,
		Encounter:    tables.Default().Encounter.Entries[5],
	}
	if d != want {
		t.Errorf("GenerateDay() = %+v, want %+v", d, want)
	}
}

func TestGenerateDayIsNotSeededByIndex(t *testing.T) {
	g := New(random.NewSeeded(5), tables.Default())

	// With a real source, rolling the same index repeatedly must not keep
	// producing the same day.
	first := g.Day(3)
	for i := 0; i < 50; i++ {
		if g.Day(3) != first {
			return
		}
	}
	t.Error("GenerateDay(3) returned the same day 51 times in a row")
}

func TestEncounterFrequency(t *testing.T) {
	tbl := tables.Default()
	const n = 10000
	days := GenerateJourney(random.NewSeeded(77), tbl, n)

	hits := 0
	for _, d := range days {
		if d.HasEncounter() {
			hits++
		}
	}

	p := tbl.EncounterChance()
	got := float64(hits) / n
	// Five standard deviations of a binomial proportion.
	tolerance := 5 * math.Sqrt(p*(1-p)/n)
	if math.Abs(got-p) > tolerance {
		t.Errorf("encounter fraction = %.4f, want %.4f ± %.4f", got, p, tolerance)
	}
}

func TestNewWithNilSource(t *testing.T) {
	g := New(nil, tables.Default())
	if days := g.Journey(10); len(days) != 10 {
		t.Fatalf("Journey(10) returned %d days", len(days))
	}
	if len(g.Tables().Weather) == 0 {
		t.Error("Tables() returned empty weather table")
	}
}
