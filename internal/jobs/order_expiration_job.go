package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpirationJob runs the expiry sweep on a fixed interval, settling
// pending orders whose expiry has passed and refunding their owners.
type OrderExpirationJob struct {
	handler  commands.ExpireOrdersCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpirationJob creates a job that sweeps expired orders every interval.
func NewOrderExpirationJob(
	handler commands.ExpireOrdersCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *OrderExpirationJob {
	return &OrderExpirationJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_expiration_job"),
	}
}

// Start begins the expiry sweep on the configured interval.
func (j *OrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %ds", int(j.interval.Seconds())), func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireOrdersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to construct expiry sweep command", "error", cmdErr)
			return
		}

		expired, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Order expiration sweep failed", "error", handleErr)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Order expiration sweep settled orders", "expired", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiration job started", "interval", j.interval)
	return nil
}

// Stop stops the expiry sweep.
func (j *OrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiration job stopped")
}
