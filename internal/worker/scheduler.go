package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a named task run by the scheduler.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs jobs on a cron schedule
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers every job under the same five-field cron spec
func NewScheduler(ctx context.Context, spec string, jobs ...Job) (*Scheduler, error) {
	c := cron.New()
	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(spec, func() {
			if err := job.Run(ctx); err != nil {
				log.Error().Err(err).Str("job", job.Name).Msg("scheduled job failed")
				return
			}
			log.Info().Str("job", job.Name).Msg("scheduled job finished")
		})
		if err != nil {
			return nil, fmt.Errorf("worker: invalid schedule %q for job %s: %w", spec, job.Name, err)
		}
	}
	return &Scheduler{cron: c}, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and returns a context done when running jobs have finished
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
