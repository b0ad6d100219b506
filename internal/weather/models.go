package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the broad weather grouping a numeric weather code falls into.
type Category string

const (
	CategoryClear        Category = "Clear"
	CategoryClouds       Category = "Clouds"
	CategoryHaze         Category = "Haze"
	CategoryDrizzle      Category = "Drizzle"
	CategoryRain         Category = "Rain"
	CategorySnow         Category = "Snow"
	CategoryThunderstorm Category = "Thunderstorm"
)

// Condition is derived from a WeatherSnapshot and drives the background choice.
type Condition struct {
	Category Category `json:"category"`
	IsDay    bool     `json:"isDay"`
}

// UnitSystem selects the temperature and wind-speed units.
// The zero value is Metric.
type UnitSystem int

const (
	Metric UnitSystem = iota
	Imperial
)

// ParseUnitSystem accepts "metric"/"imperial" as well as the "C"/"F" shorthands.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "c", "celsius":
		return Metric, nil
	case "imperial", "f", "fahrenheit":
		return Imperial, nil
	default:
		return Metric, fmt.Errorf("unknown unit system %q", s)
	}
}

func (u UnitSystem) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

// Toggle returns the other unit system.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// TemperatureParam is the forecast API value for temperature_unit.
func (u UnitSystem) TemperatureParam() string {
	if u == Imperial {
		return "fahrenheit"
	}
	return "celsius"
}

// WindSpeedParam is the forecast API value for windspeed_unit.
func (u UnitSystem) WindSpeedParam() string {
	if u == Imperial {
		return "mph"
	}
	return "kmh"
}

// TemperatureSymbol is the display suffix for temperatures.
func (u UnitSystem) TemperatureSymbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedSymbol is the display suffix for wind speeds.
func (u UnitSystem) WindSpeedSymbol() string {
	if u == Imperial {
		return "mph"
	}
	return "km/h"
}

func (u UnitSystem) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UnitSystem) UnmarshalText(b []byte) error {
	parsed, err := ParseUnitSystem(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Place is a geocoding candidate. Admin1 and ID are optional.
type Place struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name" validate:"required"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Valid reports whether the place can be selected.
func (p Place) Valid() bool {
	return strings.TrimSpace(p.Name) != ""
}

// Key identifies a place within a suggestion list: latitude, longitude and
// the id, or the name when the upstream service did not send one.
func (p Place) Key() string {
	ident := p.Name
	if p.ID != 0 {
		ident = strconv.FormatInt(p.ID, 10)
	}
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "-" +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "-" + ident
}

// Label renders "name, country[, admin1]".
func (p Place) Label() string {
	label := p.Name + ", " + p.Country
	if p.Admin1 != "" {
		label += ", " + p.Admin1
	}
	return label
}

// SunTimePlaceholder stands in for a sunrise or sunset the service did not return.
const SunTimePlaceholder = "—"

// WeatherSnapshot is the normalized result of a single forecast call.
// Unit records the system the values were requested in.
type WeatherSnapshot struct {
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidityPercent"`
	WindSpeed   float64    `json:"windSpeed"`
	WeatherCode int        `json:"weatherCode"`
	IsDay       bool       `json:"isDay"`
	Sunrise     string     `json:"sunrise"`
	Sunset      string     `json:"sunset"`
	Unit        UnitSystem `json:"unit"`
}

// Condition derives the visual condition of the snapshot.
func (s WeatherSnapshot) Condition() Condition {
	return MapCondition(s.WeatherCode, s.IsDay)
}
