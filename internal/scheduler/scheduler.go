package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"ev-rental-backend/internal/jobs"
	"ev-rental-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC timezone with seconds precision.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.SendOverdueReminders, s.jobs.SendOverdueReturnReminders)
	if err != nil {
		logger.Error("Failed to register SendOverdueReturnReminders job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.CleanupExpiredPhotos, s.jobs.CleanupExpiredPhotos)
	if err != nil {
		logger.Error("Failed to register CleanupExpiredPhotos job", "error", err)
	}

	logger.Info("All cron jobs registered")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
