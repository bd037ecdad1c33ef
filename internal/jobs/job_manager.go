package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderExpirationJob *OrderExpirationJob
	orderRetentionJob  *OrderRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireOrdersHandler commands.ExpireOrdersCommandHandler,
	purgeOrdersHandler commands.PurgeOrdersCommandHandler,
	sweepInterval time.Duration,
	purgeInterval time.Duration,
	retention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderExpirationJob: NewOrderExpirationJob(expireOrdersHandler, sweepInterval, logger),
		orderRetentionJob:  NewOrderRetentionJob(purgeOrdersHandler, purgeInterval, retention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order expiration job: %w", err)
	}

	if err := jm.orderRetentionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderExpirationJob.Stop()
		return fmt.Errorf("failed to start order retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderExpirationJob.Stop()
	jm.orderRetentionJob.Stop()
}
