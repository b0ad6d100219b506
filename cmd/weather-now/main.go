package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/session"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "weather-now",
		Short: "Current weather by city name",
		Long:  "Searches places by name and shows current conditions from Open-Meteo.",
	}

	rootCmd.AddCommand(newServeCmd(cfg), newLookupCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSessionFactory wires the Open-Meteo clients into session controllers.
// Both clients share one HTTP client.
func newSessionFactory(cfg *config.AppConfig) func(id string) *session.Controller {
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	geocoder := providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodeBaseURL)
	forecaster := providers.NewOpenMeteoProvider(httpClient, cfg.ForecastBaseURL)

	return func(id string) *session.Controller {
		return session.New(geocoder, forecaster, session.Options{
			ID:       id,
			Debounce: cfg.SearchDebounce,
			Unit:     cfg.DefaultUnit,
		})
	}
}
