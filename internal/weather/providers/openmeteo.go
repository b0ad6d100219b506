package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-now/internal/platform/obs"
	"github.com/i474232898/weather-now/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultForecastURL is the public Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

var (
	currentFields = []string{"temperature_2m", "relative_humidity_2m", "wind_speed_10m", "weather_code", "is_day"}
	dailyFields   = []string{"sunrise", "sunset"}
)

// OpenMeteoProvider implements weather.Forecaster for Open-Meteo.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider builds a forecaster. An empty baseURL selects DefaultForecastURL.
func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-forecast"),
	}
}

type forecastPayload struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
		IsDay       int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

// Fetch issues one forecast request for place in the given unit system.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, place weather.Place, unit weather.UnitSystem) (_ weather.WeatherSnapshot, err error) {
	defer obs.Time(ctx, "openmeteo.forecast")(&err)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
		values.Set("current", strings.Join(currentFields, ","))
		values.Set("daily", strings.Join(dailyFields, ","))
		values.Set("timezone", "auto")
		values.Set("temperature_unit", unit.TemperatureParam())
		values.Set("windspeed_unit", unit.WindSpeedParam())

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.WeatherSnapshot{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if payload.Current == nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: missing current block", errMalformed)
	}

	return weather.WeatherSnapshot{
		Temperature: payload.Current.Temperature,
		Humidity:    payload.Current.Humidity,
		WindSpeed:   payload.Current.WindSpeed,
		WeatherCode: payload.Current.WeatherCode,
		IsDay:       payload.Current.IsDay != 0,
		Sunrise:     firstOrPlaceholder(payload.Daily.Sunrise),
		Sunset:      firstOrPlaceholder(payload.Daily.Sunset),
		Unit:        unit,
	}, nil
}

func firstOrPlaceholder(values []string) string {
	if len(values) == 0 || values[0] == "" {
		return weather.SunTimePlaceholder
	}
	return values[0]
}
