package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

// Scheduler runs repeating callbacks such as the timeline play mode.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       *slog.Logger
}

// New creates a started Scheduler.
func New(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	s.StartAsync()
	return &Scheduler{
		scheduler: s,
		log:       log.With("component", "scheduler"),
	}
}

// Task is a cancellable repeating job.
type Task struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	once      sync.Once
	log       *slog.Logger
}

// Every schedules fn every period, first run one period from now.
// A tick is skipped while the previous run of fn is still executing.
func (s *Scheduler) Every(period time.Duration, fn func()) (timeline.Task, error) {
	if period <= 0 {
		return nil, fmt.Errorf("scheduler: invalid period %s", period)
	}

	job, err := s.scheduler.Every(period).WaitForSchedule().SingletonMode().Do(fn)
	if err != nil {
		return nil, fmt.Errorf("scheduler: schedule job: %w", err)
	}
	s.log.Debug("task scheduled", "period", period)

	return &Task{scheduler: s.scheduler, job: job, log: s.log}, nil
}

// Stop removes the job. Only the first call has an effect.
func (t *Task) Stop() {
	t.once.Do(func() {
		t.scheduler.RemoveByReference(t.job)
		t.log.Debug("task stopped")
	})
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
