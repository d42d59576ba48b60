// Package jobs provides scheduled background tasks for the rotation
// controller, built on github.com/robfig/cron/v3.
//
// The only job today is TimeoutScanJob, which advances rotations whose
// contacted provider never answered before the response deadline.
package jobs

import (
	"fmt"
	"log/slog"

	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	timeoutScanJob *TimeoutScanJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expiredContactsHandler queries.GetExpiredContactsQueryHandler,
	submitResponseHandler commands.SubmitProviderResponseCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		timeoutScanJob: NewTimeoutScanJob(expiredContactsHandler, submitResponseHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.timeoutScanJob.Start(); err != nil {
		return fmt.Errorf("failed to start timeout scan job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.timeoutScanJob.Stop()
}
