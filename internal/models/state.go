package models

// State is the persisted journey: the requested day count and the generated days.
// The JSON shape is the one stored under the "journey" key.
type State struct {
	DayCount int   `json:"dayCount"`
	Journey  []Day `json:"journey"`
}

// Clone returns a copy whose Journey slice does not alias the receiver's
func (s State) Clone() State {
	days := make([]Day, len(s.Journey))
	copy(days, s.Journey)
	return State{DayCount: s.DayCount, Journey: days}
}
