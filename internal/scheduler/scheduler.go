package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled task
type Job func(ctx context.Context) error

// Scheduler manages periodic tasks
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// New creates a new scheduler running in local time
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.Local)),
		jobs: make(map[string]cron.EntryID),
	}
}

// AddJob adds a job with a cron schedule
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		log.Printf("[scheduler] Starting job: %s", name)
		start := time.Now()

		if err := job(ctx); err != nil {
			log.Printf("[scheduler] Job %s failed: %v", name, err)
		} else {
			log.Printf("[scheduler] Job %s completed in %v", name, time.Since(start))
		}
	})

	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	log.Printf("[scheduler] Added job: %s (schedule: %s)", name, schedule)

	return nil
}

// AddRefreshJob schedules the periodic full-reprocess job. Between runs,
// badges made stale by keyword edits stay visible; this bounds how long.
func (s *Scheduler) AddRefreshJob(intervalHours int, job Job) error {
	schedule := fmt.Sprintf("0 */%d * * *", intervalHours)
	return s.AddJob("refresh", schedule, job)
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(name string) {
	if entryID, ok := s.jobs[name]; ok {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		log.Printf("[scheduler] Removed job: %s", name)
	}
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	log.Println("[scheduler] Starting scheduler")
	s.cron.Start()
}

// Stop halts the scheduler
func (s *Scheduler) Stop() context.Context {
	log.Println("[scheduler] Stopping scheduler")
	return s.cron.Stop()
}
