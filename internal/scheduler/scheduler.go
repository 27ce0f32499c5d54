package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"chamber-connect-backend/internal/jobs"
	"chamber-connect-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
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

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Roll up raw QR scans into daily summaries
	_, err := s.cron.AddFunc(cfg.RollupQRAnalytics, s.jobs.RollupQRAnalytics)
	if err != nil {
		logger.Error("Failed to register RollupQRAnalytics job", "error", err)
	}

	// Move ended trials to past_due
	_, err = s.cron.AddFunc(cfg.ExpireTrials, s.jobs.ExpireTrials)
	if err != nil {
		logger.Error("Failed to register ExpireTrials job", "error", err)
	}

	// Remind chamber admins about ending trials
	_, err = s.cron.AddFunc(cfg.SendTrialReminders, s.jobs.SendTrialReminders)
	if err != nil {
		logger.Error("Failed to register SendTrialReminders job", "error", err)
	}

	// Purge expired invitations
	_, err = s.cron.AddFunc(cfg.CleanupInvitations, s.jobs.CleanupExpiredInvitations)
	if err != nil {
		logger.Error("Failed to register CleanupExpiredInvitations job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has registered jobs
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
