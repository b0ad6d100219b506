package session

import (
	"github.com/i474232898/weather-now/internal/weather"
)

// State is everything a session knows. Only the controller's run loop
// touches it.
//
// Loading is true while exactly one forecast request of the current
// generation is outstanding. Snapshot is only set while SelectedPlace is.
type State struct {
	QueryText     string
	Suggestions   []weather.Place
	SelectedPlace *weather.Place
	Snapshot      *weather.WeatherSnapshot
	Unit          weather.UnitSystem
	Loading       bool

	// Searching is true while a geocode lookup is debouncing or in flight.
	Searching bool
	// Failed is true when the last forecast for SelectedPlace failed.
	Failed bool
}

// View is a copy of State plus the values derived from it, in the shape a
// renderer consumes. Views handed to subscribers are shared and must not be
// modified.
type View struct {
	Query       string                   `json:"query"`
	Suggestions []weather.Place          `json:"suggestions"`
	Place       *weather.Place           `json:"place,omitempty"`
	Weather     *weather.WeatherSnapshot `json:"weather,omitempty"`
	Unit        weather.UnitSystem       `json:"unit"`
	Loading     bool                     `json:"loading"`
	Searching   bool                     `json:"searching"`
	Failed      bool                     `json:"failed"`
	Condition   *weather.Condition       `json:"condition,omitempty"`
	Background  weather.Background       `json:"background"`
}

func (s *State) view() View {
	v := View{
		Query:       s.QueryText,
		Suggestions: make([]weather.Place, len(s.Suggestions)),
		Unit:        s.Unit,
		Loading:     s.Loading,
		Searching:   s.Searching,
		Failed:      s.Failed,
	}
	copy(v.Suggestions, s.Suggestions)

	if s.SelectedPlace != nil {
		p := *s.SelectedPlace
		v.Place = &p
	}
	if s.Snapshot != nil {
		snap := *s.Snapshot
		v.Weather = &snap
		cond := snap.Condition()
		v.Condition = &cond
	}
	v.Background = weather.BackgroundFor(v.Condition)
	return v
}

// clear empties everything except the unit preference.
func (s *State) clear() {
	unit := s.Unit
	*s = State{Unit: unit}
}
