package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderRetentionJob periodically deletes terminal orders older than the
// retention window. Pure housekeeping: all money settled when those orders
// reached their terminal state.
type OrderRetentionJob struct {
	handler   commands.PurgeOrdersCommandHandler
	interval  time.Duration
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderRetentionJob creates a job that purges settled history every interval.
func NewOrderRetentionJob(
	handler commands.PurgeOrdersCommandHandler,
	interval time.Duration,
	retention time.Duration,
	logger *slog.Logger,
) *OrderRetentionJob {
	return &OrderRetentionJob{
		handler:   handler,
		interval:  interval,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_retention_job"),
	}
}

// Start begins the retention job on the configured interval.
func (j *OrderRetentionJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %ds", int(j.interval.Seconds())), func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPurgeOrdersCommand(j.retention)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to construct purge command", "error", cmdErr)
			return
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Order retention purge failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order retention job started",
		"interval", j.interval, "retention", j.retention)
	return nil
}

// Stop stops the retention job.
func (j *OrderRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order retention job stopped")
}
