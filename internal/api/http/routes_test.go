package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-now/internal/session"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather"
)

var london = weather.Place{ID: 2643743, Name: "London", Country: "United Kingdom", Admin1: "England", Latitude: 51.50853, Longitude: -0.12574}

type stubGeocoder struct{}

func (stubGeocoder) Search(_ context.Context, q string) ([]weather.Place, error) {
	if strings.HasPrefix("London", q) {
		return []weather.Place{london}, nil
	}
	return nil, nil
}

type stubForecaster struct{}

func (stubForecaster) Fetch(_ context.Context, _ weather.Place, unit weather.UnitSystem) (weather.WeatherSnapshot, error) {
	return weather.WeatherSnapshot{Temperature: 12, Humidity: 70, WindSpeed: 9, WeatherCode: 61, IsDay: false, Sunrise: "07:24", Sunset: "18:01", Unit: unit}, nil
}

func newTestApp(t *testing.T, maxSessions int) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	sessions := store.NewMemoryStore(maxSessions, time.Hour)
	t.Cleanup(sessions.CloseAll)

	RegisterRoutes(app, sessions, func(id string) *session.Controller {
		return session.New(stubGeocoder{}, stubForecaster{}, session.Options{ID: id, Debounce: 10 * time.Millisecond})
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/v1/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	var created struct {
		ID   string       `json:"id"`
		View session.View `json:"view"`
	}
	decode(t, resp, &created)
	if created.ID == "" {
		t.Fatal("expected session id")
	}
	if created.View.Unit != weather.Metric || created.View.Background != weather.DefaultBackground {
		t.Fatalf("unexpected initial view %+v", created.View)
	}
	return created.ID
}

func TestUnknownSessionReturns404(t *testing.T) {
	app := newTestApp(t, 10)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/sessions/nope"},
		{http.MethodPost, "/api/v1/sessions/nope/submit"},
		{http.MethodDelete, "/api/v1/sessions/nope"},
	} {
		resp := do(t, app, tc.method, tc.path, "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s %s: expected status %d, got %d", tc.method, tc.path, http.StatusNotFound, resp.StatusCode)
		}
		var body map[string]any
		decode(t, resp, &body)
		if body["error"] != true {
			t.Fatalf("expected error body, got %v", body)
		}
	}
}

func TestSelectValidation(t *testing.T) {
	app := newTestApp(t, 10)
	id := createSession(t, app)

	// Missing name.
	resp := do(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/select", `{"latitude": 51.5, "longitude": -0.12}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Latitude out of range.
	resp = do(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/select", `{"name": "Nowhere", "latitude": 91, "longitude": 0}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Malformed JSON.
	resp = do(t, app, http.MethodPut, "/api/v1/sessions/"+id+"/query", `{"text": `)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSessionLimit(t *testing.T) {
	app := newTestApp(t, 1)
	createSession(t, app)

	resp := do(t, app, http.MethodPost, "/api/v1/sessions", "")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}

func TestSessionFlow(t *testing.T) {
	app := newTestApp(t, 10)
	id := createSession(t, app)
	base := "/api/v1/sessions/" + id

	resp := do(t, app, http.MethodPut, base+"/query", `{"text": "Lon"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp.Body.Close()

	var v session.View
	deadline := time.Now().Add(2 * time.Second)
	for {
		decode(t, do(t, app, http.MethodGet, base, ""), &v)
		if !v.Searching && len(v.Suggestions) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("suggestions never arrived: %+v", v)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if v.Suggestions[0] != london {
		t.Fatalf("unexpected suggestion %+v", v.Suggestions[0])
	}

	decode(t, do(t, app, http.MethodPost, base+"/submit", ""), &v)
	if v.Place == nil || v.Place.Name != "London" || len(v.Suggestions) != 0 {
		t.Fatalf("unexpected view after submit %+v", v)
	}

	v = pollLoaded(t, app, base)
	if v.Weather == nil || v.Condition == nil || v.Condition.Category != weather.CategoryRain {
		t.Fatalf("expected rain, got %+v", v)
	}
	if v.Background.Asset != "Rain.gif" {
		t.Fatalf("background = %+v", v.Background)
	}

	decode(t, do(t, app, http.MethodPost, base+"/unit/toggle", ""), &v)
	if v.Unit != weather.Imperial {
		t.Fatalf("unit = %v, want imperial", v.Unit)
	}
	v = pollLoaded(t, app, base)
	if v.Weather == nil || v.Weather.Unit != weather.Imperial {
		t.Fatalf("expected imperial weather, got %+v", v.Weather)
	}

	decode(t, do(t, app, http.MethodPost, base+"/reset", ""), &v)
	if v.Place != nil || v.Weather != nil || v.Query != "" || v.Unit != weather.Imperial {
		t.Fatalf("unexpected view after reset %+v", v)
	}

	resp = do(t, app, http.MethodDelete, base, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}
	resp = do(t, app, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func pollLoaded(t *testing.T, app *fiber.App, base string) session.View {
	t.Helper()
	var v session.View
	deadline := time.Now().Add(2 * time.Second)
	for {
		decode(t, do(t, app, http.MethodGet, base, ""), &v)
		if !v.Loading {
			return v
		}
		if time.Now().After(deadline) {
			t.Fatalf("forecast never resolved: %+v", v)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
