package journey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/generator"
	"github.com/julianstephens/travelogue/internal/models"
)

var (
	// ErrInvalidDayCount is returned for day counts outside [MinDays, MaxDays]
	ErrInvalidDayCount = fmt.Errorf("day count must be between %d and %d", constants.MinDays, constants.MaxDays)
	// ErrDayNotFound is returned when toggling an id that is not in the journey
	ErrDayNotFound = errors.New("day not found in journey")
)

// ValidateDayCount checks n against the journey limits
func ValidateDayCount(n int) error {
	if n < constants.MinDays || n > constants.MaxDays {
		return fmt.Errorf("%w: got %d", ErrInvalidDayCount, n)
	}
	return nil
}

// ParseDayCount parses user input for the day count field
func ParseDayCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidDayCount, s)
	}
	if err := ValidateDayCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// New generates a fresh journey state for count days
func New(gen *generator.Generator, count int) (models.State, error) {
	if err := ValidateDayCount(count); err != nil {
		return models.State{}, err
	}
	return models.State{DayCount: count, Journey: gen.Journey(count)}, nil
}

// Default generates a journey of the default length
func Default(gen *generator.Generator) models.State {
	return models.State{DayCount: constants.DefaultDays, Journey: gen.Journey(constants.DefaultDays)}
}

// Regenerate replaces every day with a newly rolled one, keeping the day count
func Regenerate(s *models.State, gen *generator.Generator) {
	if ValidateDayCount(s.DayCount) != nil {
		s.DayCount = constants.DefaultDays
	}
	s.Journey = gen.Journey(s.DayCount)
}

// SetDayCount regenerates the journey with n days. Invalid values are
// ignored and leave the state untouched; the return reports whether it changed.
func SetDayCount(s *models.State, gen *generator.Generator, n int) bool {
	if ValidateDayCount(n) != nil {
		return false
	}
	s.DayCount = n
	s.Journey = gen.Journey(n)
	return true
}

// Toggle flips HasPassed on the day with the given id
func Toggle(s *models.State, id int) error {
	i := indexOf(s.Journey, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrDayNotFound, id)
	}
	s.Journey[i].HasPassed = !s.Journey[i].HasPassed
	return nil
}

// Next returns the first day not yet passed
func Next(s models.State) (models.Day, bool) {
	for _, d := range s.Journey {
		if !d.HasPassed {
			return d, true
		}
	}
	return models.Day{}, false
}

// Passed counts the days marked as passed
func Passed(s models.State) int {
	n := 0
	for _, d := range s.Journey {
		if d.HasPassed {
			n++
		}
	}
	return n
}

// Remaining counts the days not yet passed
func Remaining(s models.State) int {
	return len(s.Journey) - Passed(s)
}

// Summary aggregates a journey for status lines
type Summary struct {
	Days       int
	Passed     int
	Encounters int
	SlowHexes  int
	FastHexes  int
	Weather    map[models.Weather]int
}

// Summarize computes the Summary of a journey
func Summarize(s models.State) Summary {
	sum := Summary{Days: len(s.Journey), Weather: make(map[models.Weather]int)}
	for _, d := range s.Journey {
		if d.HasPassed {
			sum.Passed++
		}
		if d.HasEncounter() {
			sum.Encounters++
		}
		sum.SlowHexes += d.DistanceSlow
		sum.FastHexes += d.DistanceFast
		sum.Weather[d.Weather]++
	}
	return sum
}

// Check verifies the journey invariants of a loaded state
func Check(s models.State) error {
	if err := ValidateDayCount(s.DayCount); err != nil {
		return err
	}
	if len(s.Journey) != s.DayCount {
		return fmt.Errorf("journey has %d days but day count is %d", len(s.Journey), s.DayCount)
	}
	for i, d := range s.Journey {
		if d.ID != i {
			return fmt.Errorf("day at position %d has id %d", i, d.ID)
		}
	}
	return nil
}

func indexOf(days []models.Day, id int) int {
	// ids equal positions in a well formed journey
	if id >= 0 && id < len(days) && days[id].ID == id {
		return id
	}
	for i, d := range days {
		if d.ID == id {
			return i
		}
	}
	return -1
}
