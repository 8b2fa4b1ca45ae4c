package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	expirationSweepJob *ExpirationSweepJob
}

// NewJobManager wires the scheduled jobs to their command handlers.
func NewJobManager(sweeper ExpirationSweeper, sweepSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		expirationSweepJob: NewExpirationSweepJob(sweeper, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.expirationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiration sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for in-flight runs.
func (jm *JobManager) StopAll() {
	jm.expirationSweepJob.Stop()
}
