package commands

import (
	"context"
	"log/slog"
	"time"
)

// PurgeOrdersCommandHandler handles the business logic for retention cleanup.
//
// Purging touches only terminal orders: their money settled when they reached
// the terminal state, so deletion is pure housekeeping and involves no ledger
// calls.
type PurgeOrdersCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewPurgeOrdersCommandHandler creates a handler for retention operations.
func NewPurgeOrdersCommandHandler(uowFactory UoWFactory, logger *slog.Logger) PurgeOrdersCommandHandler {
	return PurgeOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "purge_orders_handler"),
	}
}

// Handle processes the purge command and returns how many orders were deleted.
func (h PurgeOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	cutoff := time.Now().Add(-cmd.Retention())
	purged, err := uow.OrderRepository().PurgeTerminalBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		h.logger.InfoContext(ctx, "Purged settled orders past retention",
			"purged", purged,
			"cutoff", cutoff,
		)
	}

	return purged, nil
}
