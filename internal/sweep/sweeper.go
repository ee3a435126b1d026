// Package sweep runs the periodic job expiry pass: approved postings whose
// deadline has passed are moved to expired so they drop out of search.
package sweep

import (
	"context"
	"log"
	"time"

	"faculty-jobs-api/internal/services"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

// Sweeper schedules the expiry pass on a cron expression.
type Sweeper struct {
	jobs services.JobService
	cron *cron.Cron
}

// NewSweeper creates a sweeper around the job service.
func NewSweeper(jobs services.JobService) *Sweeper {
	return &Sweeper{
		jobs: jobs,
		cron: cron.New(),
	}
}

// Start runs one pass immediately to catch up after downtime, then schedules
// recurring passes. The schedule is a standard 5-field cron expression.
func (s *Sweeper) Start(schedule string) error {
	s.runOnce()

	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Job expiry sweep scheduled: %s", schedule)
	return nil
}

// Stop halts the schedule and waits for a running pass to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Job expiry sweep stopped")
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.jobs.ExpireDue(ctx); err != nil {
		log.Printf("Sweep: expiry pass failed: %v", err)
	}
}
