package models

// Weather is the category rolled on the weather table for a day
type Weather string

const (
	WeatherClear         Weather = "clear"
	WeatherLightRain     Weather = "light rain"
	WeatherHeavyRain     Weather = "heavy rain"
	WeatherTropicalStorm Weather = "tropical storm"
)

// Direction is a hex face the party drifts toward when lost
type Direction string

const (
	DirectionNorth     Direction = "N"
	DirectionNorthEast Direction = "NE"
	DirectionSouthEast Direction = "SE"
	DirectionSouth     Direction = "S"
	DirectionSouthWest Direction = "SW"
	DirectionNorthWest Direction = "NW"
)

// Day is a single day of travel. Only HasPassed changes after generation.
type Day struct {
	ID           int       `json:"id"`
	Weather      Weather   `json:"weather"`
	DistanceSlow int       `json:"distanceSlow"` // hexes at slow pace
	DistanceFast int       `json:"distanceFast"` // hexes at fast pace
	Direction    Direction `json:"direction"`    // only used if the party is lost
	Encounter    string    `json:"encounter,omitempty"`
	HasPassed    bool      `json:"hasPassed"`
}

// HasEncounter reports whether the encounter gate fired for this day
func (d Day) HasEncounter() bool {
	return d.Encounter != ""
}
