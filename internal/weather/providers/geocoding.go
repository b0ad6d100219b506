package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/weather-now/internal/platform/obs"
	"github.com/i474232898/weather-now/internal/weather"
	"github.com/sony/gobreaker"
)

const (
	// DefaultGeocodeURL is the public Open-Meteo geocoding endpoint.
	DefaultGeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"

	geocodeCount    = 5
	geocodeLanguage = "en"
)

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder builds a geocoder. An empty baseURL selects DefaultGeocodeURL.
func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-geocode"),
	}
}

// Search returns up to five candidates for query in the order the service ranks them.
// A response without "results" is an empty list, not an error.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string) (_ []weather.Place, err error) {
	defer obs.Time(ctx, "openmeteo.geocode")(&err)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", strconv.Itoa(geocodeCount))
		values.Set("language", geocodeLanguage)

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.client, g.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []weather.Place `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	return payload.Results, nil
}
