package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner is the retention hook the sweeper invokes.
type Pruner interface {
	Prune() int
}

// Scheduler periodically prunes idle chat sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Pruner
	interval  time.Duration
}

// New creates a Scheduler sweeping the store at the given interval.
func New(store Pruner, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		store:     store,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		if removed := s.store.Prune(); removed > 0 {
			log.Printf("scheduler: pruned %d idle session(s)", removed)
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
