package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper removes idle sessions and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// Scheduler periodically evicts idle sessions from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  Sweeper
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, sessions Sweeper) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sessions:  sessions,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		if n := s.sessions.Sweep(); n > 0 {
			log.Printf("scheduler: evicted %d idle sessions", n)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
