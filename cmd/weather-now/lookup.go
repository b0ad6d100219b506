package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/session"
	"github.com/i474232898/weather-now/internal/weather"
)

var (
	errNoPlaces   = errors.New("no matching places")
	errShortQuery = errors.New("query too short")
)

func newLookupCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [city]",
		Short: "Show current weather for the best match of a city name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unitFlag, _ := cmd.Flags().GetString("unit")
			output, _ := cmd.Flags().GetString("output")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			unit, err := weather.ParseUnitSystem(unitFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			v, err := lookup(ctx, cfg, strings.Join(args, " "), unit)
			if err != nil {
				return err
			}
			return printView(v, output)
		},
	}

	cmd.Flags().StringP("unit", "u", cfg.DefaultUnit.String(), "Unit system (metric, imperial)")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	cmd.Flags().Duration("timeout", 15*time.Second, "Give up after this long")
	return cmd
}

// lookup drives one session the way a user would: type, submit the first
// suggestion, wait for the forecast.
func lookup(ctx context.Context, cfg *config.AppConfig, city string, unit weather.UnitSystem) (session.View, error) {
	if !session.Searchable(city) {
		return session.View{}, fmt.Errorf("%w: city name must have at least %d characters", errShortQuery, session.MinQueryLength)
	}

	ctrl := newSessionFactory(cfg)("cli")
	defer ctrl.Close()

	if ctrl.View().Unit != unit {
		ctrl.ToggleUnit()
	}
	ctrl.QueryChange(city)

	v, err := ctrl.Await(ctx, func(v session.View) bool { return !v.Searching })
	if err != nil {
		return session.View{}, err
	}
	if len(v.Suggestions) == 0 {
		return session.View{}, fmt.Errorf("%w for %q", errNoPlaces, city)
	}

	ctrl.Submit()
	v, err = ctrl.Await(ctx, func(v session.View) bool { return !v.Loading })
	if err != nil {
		return session.View{}, err
	}
	if v.Failed || v.Weather == nil {
		return session.View{}, fmt.Errorf("no weather available for %s", v.Place.Label())
	}
	return v, nil
}

func printView(v session.View, output string) error {
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	w := v.Weather
	fmt.Printf("%s\n", v.Place.Label())
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Temperature: %.0f%s\n", math.Round(w.Temperature), w.Unit.TemperatureSymbol())
	fmt.Printf("Wind:        %.0f %s\n", math.Round(w.WindSpeed), w.Unit.WindSpeedSymbol())
	fmt.Printf("Humidity:    %.0f%%\n", math.Round(w.Humidity))
	fmt.Printf("Sunrise:     %s\n", w.Sunrise)
	fmt.Printf("Sunset:      %s\n", w.Sunset)
	fmt.Printf("Condition:   %s (%s)\n", v.Condition.Category, dayOrNight(v.Condition.IsDay))
	fmt.Printf("Background:  %s\n", v.Background.Asset)
	return nil
}

func dayOrNight(isDay bool) string {
	if isDay {
		return "day"
	}
	return "night"
}
