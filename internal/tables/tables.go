// Package tables holds the roll tables a travelogue is generated from.
//
// Table content is configuration: the defaults are embedded from default.yaml
// and can be replaced wholesale by a user supplied YAML file.
package tables

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/travelogue/internal/models"
)

//go:embed default.yaml
var defaultYAML []byte

// WeatherEntry is one weighted row of the weather table
type WeatherEntry struct {
	Weather models.Weather `yaml:"weather" validate:"required"`
	Weight  int            `yaml:"weight" validate:"gt=0"`
	Note    string         `yaml:"note,omitempty"`
}

// Range is an inclusive interval rolled uniformly
type Range struct {
	Min int `yaml:"min" validate:"gte=1"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// EncounterTable gates encounters on a die roll of Threshold or higher,
// then picks uniformly from Entries.
type EncounterTable struct {
	Die       int      `yaml:"die" validate:"gte=2"`
	Threshold int      `yaml:"threshold" validate:"gte=1,ltefield=Die"`
	Entries   []string `yaml:"entries" validate:"min=1,dive,required"`
}

// Tables is the full set of tables one day is rolled from
type Tables struct {
	Weather    []WeatherEntry     `yaml:"weather" validate:"min=1,dive"`
	Slow       Range              `yaml:"slow"`
	Fast       Range              `yaml:"fast"`
	Directions []models.Direction `yaml:"directions" validate:"min=1,dive,required"`
	Encounter  EncounterTable     `yaml:"encounter"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var defaults Tables

func init() {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default tables are invalid: %v", err))
	}
	defaults = t
}

// Default returns a copy of the embedded tables
func Default() Tables {
	return defaults.clone()
}

// Load reads and validates a tables file. An empty path yields the defaults.
func Load(path string) (Tables, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tables{}, fmt.Errorf("invalid tables file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes YAML tables, rejecting unknown keys, and validates them
func Parse(data []byte) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Validate checks the structural rules every table set must satisfy
func (t Tables) Validate() error {
	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// Marshal renders the tables back to YAML
func (t Tables) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// EncounterChance is the probability the daily encounter gate fires
func (t Tables) EncounterChance() float64 {
	e := t.Encounter
	return float64(e.Die-e.Threshold+1) / float64(e.Die)
}

// HasWeather reports whether w is a row of the weather table
func (t Tables) HasWeather(w models.Weather) bool {
	for _, e := range t.Weather {
		if e.Weather == w {
			return true
		}
	}
	return false
}

// HasDirection reports whether d is one of the direction entries
func (t Tables) HasDirection(d models.Direction) bool {
	for _, x := range t.Directions {
		if x == d {
			return true
		}
	}
	return false
}

// WeatherNote returns the legend note for a weather category
func (t Tables) WeatherNote(w models.Weather) string {
	for _, e := range t.Weather {
		if e.Weather == w {
			return e.Note
		}
	}
	return ""
}

func (t Tables) clone() Tables {
	c := t
	c.Weather = append([]WeatherEntry(nil), t.Weather...)
	c.Directions = append([]models.Direction(nil), t.Directions...)
	c.Encounter.Entries = append([]string(nil), t.Encounter.Entries...)
	return c
}
