package session

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/i474232898/weather-now/internal/weather"
)

const (
	// MinQueryLength is the shortest trimmed query sent to the geocoder.
	MinQueryLength = 3
	// DefaultDebounce is how long the query must stay unchanged before a lookup fires.
	DefaultDebounce = 300 * time.Millisecond
)

// geocodeSearch tracks the one lookup that may still update suggestions.
type geocodeSearch struct {
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// supersede stops the pending timer and aborts the in-flight request.
// Resolutions carrying an older generation are dropped.
func (s *geocodeSearch) supersede() uint64 {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.gen
}

// Searchable reports whether text, once trimmed, is long enough to be
// sent to the geocoder.
func Searchable(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinQueryLength
}

func (c *Controller) changeQuery(text string) {
	c.state.QueryText = text
	gen := c.search.supersede()
	c.changed()

	q := strings.TrimSpace(text)
	if !Searchable(q) {
		c.state.Suggestions = nil
		c.state.Searching = false
		return
	}

	c.state.Searching = true
	c.search.timer = time.AfterFunc(c.debounce, func() {
		c.post(func() { c.startSearch(gen, q) })
	})
}

func (c *Controller) startSearch(gen uint64, q string) {
	if gen != c.search.gen {
		return
	}
	c.search.timer = nil

	ctx, cancel := context.WithCancel(c.ctx)
	c.search.cancel = cancel

	go func() {
		places, err := c.geocoder.Search(ctx, q)
		c.post(func() { c.finishSearch(gen, q, places, err) })
	}()
}

func (c *Controller) finishSearch(gen uint64, q string, places []weather.Place, err error) {
	if gen != c.search.gen {
		return
	}
	if c.search.cancel != nil {
		c.search.cancel()
		c.search.cancel = nil
	}

	c.state.Searching = false
	c.changed()

	if err != nil {
		log.Printf("INFO: session=%s geocode %q failed, clearing suggestions: %v", c.id, q, err)
		c.state.Suggestions = nil
		return
	}
	c.state.Suggestions = uniquePlaces(places)
}

// uniquePlaces drops repeated places, keeping the upstream order.
func uniquePlaces(places []weather.Place) []weather.Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]weather.Place, 0, len(places))
	for _, p := range places {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
