package weather

import "testing"

func TestMapConditionTable(t *testing.T) {
	cases := []struct {
		code int
		want Category
	}{
		{0, CategoryClear},
		{1, CategoryClear},
		{2, CategoryClouds},
		{3, CategoryClouds},
		{45, CategoryHaze},
		{48, CategoryHaze},
		{51, CategoryDrizzle},
		{57, CategoryDrizzle},
		{61, CategoryRain},
		{67, CategoryRain},
		{71, CategorySnow},
		{77, CategorySnow},
		{80, CategoryRain},
		{82, CategoryRain},
		{85, CategorySnow},
		{86, CategorySnow},
		{95, CategoryThunderstorm},
		{96, CategoryThunderstorm},
		{99, CategoryThunderstorm},
		// unmapped
		{4, CategoryClear},
		{50, CategoryClear},
		{98, CategoryClear},
		{-1, CategoryClear},
		{1000, CategoryClear},
	}

	for _, tc := range cases {
		if got := MapCondition(tc.code, true).Category; got != tc.want {
			t.Errorf("MapCondition(%d) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestMapConditionTotalOverWMORange(t *testing.T) {
	known := map[Category]bool{
		CategoryClear: true, CategoryClouds: true, CategoryHaze: true, CategoryDrizzle: true,
		CategoryRain: true, CategorySnow: true, CategoryThunderstorm: true,
	}

	for code := 0; code <= 99; code++ {
		for _, isDay := range []bool{true, false} {
			c := MapCondition(code, isDay)
			if !known[c.Category] {
				t.Fatalf("code %d mapped to unknown category %q", code, c.Category)
			}
			if c.IsDay != isDay {
				t.Fatalf("code %d lost day flag", code)
			}
		}
	}
}

func TestBackgroundFor(t *testing.T) {
	cases := []struct {
		name string
		cond *Condition
		want Background
	}{
		{"none", nil, DefaultBackground},
		{"clear day", &Condition{CategoryClear, true}, Background{"ClearDay.gif", BackgroundImage}},
		{"clear night", &Condition{CategoryClear, false}, Background{"ClearNight.gif", BackgroundImage}},
		{"clouds day", &Condition{CategoryClouds, true}, Background{"CloudsDay.gif", BackgroundImage}},
		{"clouds night", &Condition{CategoryClouds, false}, Background{"CloudsNight.gif", BackgroundImage}},
		{"drizzle", &Condition{CategoryDrizzle, true}, Background{"Rain.gif", BackgroundImage}},
		{"rain", &Condition{CategoryRain, false}, Background{"Rain.gif", BackgroundImage}},
		{"snow", &Condition{CategorySnow, false}, Background{"Snow.gif", BackgroundImage}},
		{"haze", &Condition{CategoryHaze, true}, Background{"Haze.gif", BackgroundImage}},
		{"storm", &Condition{CategoryThunderstorm, true}, Background{"Thunderstorm.gif", BackgroundImage}},
		{"unlisted", &Condition{Category("Tornado"), true}, DefaultBackground},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BackgroundFor(tc.cond); got != tc.want {
				t.Fatalf("BackgroundFor = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnitSystem(t *testing.T) {
	if Metric.Toggle() != Imperial || Imperial.Toggle() != Metric {
		t.Fatal("toggle should flip between metric and imperial")
	}
	if Imperial.TemperatureParam() != "fahrenheit" || Imperial.WindSpeedParam() != "mph" {
		t.Error("unexpected imperial params")
	}
	if Metric.TemperatureSymbol() != "°C" || Metric.WindSpeedSymbol() != "km/h" {
		t.Error("unexpected metric symbols")
	}

	for in, want := range map[string]UnitSystem{"metric": Metric, "C": Metric, "Imperial": Imperial, " f ": Imperial} {
		got, err := ParseUnitSystem(in)
		if err != nil || got != want {
			t.Errorf("ParseUnitSystem(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseUnitSystem("kelvin"); err == nil {
		t.Error("expected error for kelvin")
	}
}

func TestPlaceKeyAndLabel(t *testing.T) {
	withID := Place{ID: 42, Name: "Springfield", Country: "US", Admin1: "Illinois", Latitude: 39.8, Longitude: -89.64}
	withoutID := Place{Name: "Springfield", Country: "US", Latitude: 39.8, Longitude: -89.64}

	if withID.Key() != "39.8--89.64-42" {
		t.Errorf("key = %q", withID.Key())
	}
	if withoutID.Key() != "39.8--89.64-Springfield" {
		t.Errorf("key = %q", withoutID.Key())
	}
	if withID.Label() != "Springfield, US, Illinois" || withoutID.Label() != "Springfield, US" {
		t.Errorf("unexpected labels %q / %q", withID.Label(), withoutID.Label())
	}
	if (Place{Name: "  "}).Valid() {
		t.Error("blank name should be invalid")
	}
}
