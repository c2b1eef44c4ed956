package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron schedules. Overlapping runs of the same job are
// skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     *logrus.Logger
	timeout time.Duration
}

// NewScheduler creates a scheduler whose jobs each get at most timeout to run
func NewScheduler(log *logrus.Logger, timeout time.Duration) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		log:     log,
		timeout: timeout,
	}
}

// Register adds a named job on a standard five-field cron spec
func (s *Scheduler) Register(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	s.log.Infof("Scheduled job %s: %s", name, spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Errorf("Job %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	s.log.Infof("Job %s finished in %s", name, time.Since(start))
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
