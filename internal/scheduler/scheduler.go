package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/THMSCMPG/AURA-MF/internal/dashboard"
)

// Scheduler periodically advances the mocked dashboard telemetry state.
type Scheduler struct {
	scheduler *gocron.Scheduler
	state     *dashboard.State
	interval  time.Duration
}

// New creates a new Scheduler ticking state every interval.
func New(state *dashboard.State, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		state:     state,
		interval:  interval,
	}
}

// Start schedules the periodic tick and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	seconds := int(s.interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(func() {
		s.state.Tick()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: dashboard tick every %ds", seconds)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
