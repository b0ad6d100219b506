package store

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/i474232898/weather-now/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the store is at capacity.
	ErrTooManySessions = errors.New("too many sessions")
)

// entry pairs a controller with the last time it was used. lastSeen is
// updated under the read lock.
type entry struct {
	ctrl     *session.Controller
	lastSeen *atomic.Int64
}

// MemoryStore is a concurrency-safe registry of live session controllers.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions
	maxIdle     time.Duration // sessions unused for longer are swept

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions or maxIdle is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxIdle time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxIdle:     maxIdle,
		now:         time.Now,
	}
}

// Save registers ctrl under its id. The controller is closed by the store
// when it is deleted or swept.
func (s *MemoryStore) Save(ctrl *session.Controller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[ctrl.ID()]; !ok && s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		return ErrTooManySessions
	}

	s.data[ctrl.ID()] = &entry{
		ctrl:     ctrl,
		lastSeen: atomic.NewInt64(s.now().UnixNano()),
	}
	return nil
}

// Get returns the controller for id and marks it as used.
func (s *MemoryStore) Get(id string) (*session.Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen.Store(s.now().UnixNano())
	return e.ctrl, nil
}

// Delete closes and removes the session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.data[id]
	delete(s.data, id)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.ctrl.Close()
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep closes and removes sessions idle for longer than the configured
// maximum and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.maxIdle <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.maxIdle).UnixNano()

	s.mu.Lock()
	var expired []*session.Controller
	for id, e := range s.data {
		if e.lastSeen.Load() < cutoff {
			expired = append(expired, e.ctrl)
			delete(s.data, id)
		}
	}
	s.mu.Unlock()

	for _, ctrl := range expired {
		ctrl.Close()
	}
	return len(expired)
}

// CloseAll closes every session and empties the store.
func (s *MemoryStore) CloseAll() {
	s.mu.Lock()
	all := s.data
	s.data = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range all {
		e.ctrl.Close()
	}
}
