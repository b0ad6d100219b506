package weather

import (
	"context"
)

// Geocoder resolves free-text place names into ordered candidates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Forecaster fetches current conditions for a place in the given unit system.
type Forecaster interface {
	Fetch(ctx context.Context, place Place, unit UnitSystem) (WeatherSnapshot, error)
}
