package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/i474232898/weather-now/internal/platform/obs"
	"github.com/i474232898/weather-now/internal/weather"
)

// ErrClosed is returned by Await once the controller has been closed.
var ErrClosed = errors.New("session closed")

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	ID       string
	Debounce time.Duration
	Unit     weather.UnitSystem
}

// Controller drives one weather lookup session. Intents and the results of
// network calls are applied one at a time, in arrival order, on a single
// goroutine; each intent method returns once its transition is applied.
type Controller struct {
	id         string
	geocoder   weather.Geocoder
	forecaster weather.Forecaster
	debounce   time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	events  chan func()
	stopped chan struct{}

	// Owned by run.
	state       State
	search      geocodeSearch
	fetchGen    uint64
	fetchCancel context.CancelFunc
	dirty       bool
	subscribers map[int]chan View
	nextSubID   int
}

// New starts a controller. Call Close to release it.
func New(geocoder weather.Geocoder, forecaster weather.Forecaster, opts Options) *Controller {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(obs.WithSession(context.Background(), opts.ID))

	c := &Controller{
		id:          opts.ID,
		geocoder:    geocoder,
		forecaster:  forecaster,
		debounce:    debounce,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan func(), 16),
		stopped:     make(chan struct{}),
		state:       State{Unit: opts.Unit},
		subscribers: make(map[int]chan View),
	}
	go c.run()
	return c
}

// ID returns the session id the controller was created with.
func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) run() {
	defer close(c.stopped)

	for {
		select {
		case <-c.ctx.Done():
			c.search.supersede()
			c.supersedeFetch()
			for id, ch := range c.subscribers {
				close(ch)
				delete(c.subscribers, id)
			}
			return
		case fn := <-c.events:
			fn()
			if c.dirty {
				c.dirty = false
				c.publish()
			}
		}
	}
}

// post queues fn on the run loop without waiting for it.
func (c *Controller) post(fn func()) bool {
	select {
	case c.events <- fn:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// do runs fn on the run loop and waits for it. It reports false if the
// controller stopped before fn ran.
func (c *Controller) do(fn func()) bool {
	done := make(chan struct{})
	if !c.post(func() {
		fn()
		close(done)
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-c.stopped:
		return false
	}
}

func (c *Controller) changed() {
	c.dirty = true
}

func (c *Controller) publish() {
	v := c.state.view()
	for _, ch := range c.subscribers {
		select {
		case ch <- v:
		default:
			// Only the latest view matters.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// QueryChange records new search text and (re)schedules the geocode lookup.
func (c *Controller) QueryChange(text string) {
	c.do(func() { c.changeQuery(text) })
}

// SelectSuggestion selects place and fetches its weather. A place without a
// name is ignored.
func (c *Controller) SelectSuggestion(place weather.Place) {
	c.do(func() { c.selectPlace(place) })
}

// Submit selects the first current suggestion. Without suggestions it does nothing.
func (c *Controller) Submit() {
	c.do(func() {
		if len(c.state.Suggestions) == 0 {
			return
		}
		c.selectPlace(c.state.Suggestions[0])
	})
}

// ToggleUnit flips between metric and imperial and refetches the selected place.
func (c *Controller) ToggleUnit() {
	c.do(func() {
		c.state.Unit = c.state.Unit.Toggle()
		c.changed()
		if c.state.SelectedPlace != nil {
			// Values in the old unit are never shown under the new one.
			c.state.Snapshot = nil
			c.startFetch()
		}
	})
}

// Reset starts a new search. The unit preference is kept.
func (c *Controller) Reset() {
	c.do(func() {
		c.search.supersede()
		c.supersedeFetch()
		c.state.clear()
		c.changed()
	})
}

// View returns the current view. After Close it returns the zero View.
func (c *Controller) View() View {
	var v View
	c.do(func() { v = c.state.view() })
	return v
}

// Subscribe returns a channel that receives the current view and then the
// latest view after every change. Slow readers skip intermediate views.
// The channel is closed by the returned cancel func or by Close.
func (c *Controller) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)
	var id int
	if !c.do(func() {
		id = c.nextSubID
		c.nextSubID++
		c.subscribers[id] = ch
		ch <- c.state.view()
	}) {
		close(ch)
		return ch, func() {}
	}

	return ch, func() {
		c.do(func() {
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

// Await blocks until ready reports true for a published view.
func (c *Controller) Await(ctx context.Context, ready func(View) bool) (View, error) {
	views, cancel := c.Subscribe()
	defer cancel()

	for {
		select {
		case v, ok := <-views:
			if !ok {
				return View{}, ErrClosed
			}
			if ready(v) {
				return v, nil
			}
		case <-ctx.Done():
			return View{}, ctx.Err()
		}
	}
}

// Close stops the controller and aborts outstanding requests.
func (c *Controller) Close() {
	c.cancel()
	<-c.stopped
}

func (c *Controller) selectPlace(place weather.Place) {
	if !place.Valid() {
		return
	}

	c.search.supersede()
	c.state.QueryText = place.Label()
	c.state.Suggestions = nil
	c.state.Searching = false
	c.state.SelectedPlace = &place
	c.state.Snapshot = nil
	c.startFetch()
}

// supersedeFetch aborts the outstanding forecast, if any, and makes sure its
// resolution is dropped.
func (c *Controller) supersedeFetch() uint64 {
	c.fetchGen++
	if c.fetchCancel != nil {
		c.fetchCancel()
		c.fetchCancel = nil
	}
	return c.fetchGen
}

func (c *Controller) startFetch() {
	gen := c.supersedeFetch()
	place := *c.state.SelectedPlace
	unit := c.state.Unit

	ctx, cancel := context.WithCancel(c.ctx)
	c.fetchCancel = cancel

	c.state.Loading = true
	c.state.Failed = false
	c.changed()

	go func() {
		snap, err := c.forecaster.Fetch(ctx, place, unit)
		c.post(func() { c.finishFetch(gen, place, snap, err) })
	}()
}

func (c *Controller) finishFetch(gen uint64, place weather.Place, snap weather.WeatherSnapshot, err error) {
	if gen != c.fetchGen {
		return
	}
	if c.fetchCancel != nil {
		c.fetchCancel()
		c.fetchCancel = nil
	}

	c.state.Loading = false
	c.changed()

	if err != nil {
		log.Printf("INFO: session=%s forecast for %s failed: %v", c.id, place.Label(), err)
		c.state.Snapshot = nil
		c.state.Failed = true
		return
	}
	c.state.Snapshot = &snap
}
