package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// ExpireOrdersCommandHandler handles the business logic for the expiry sweep.
//
// The sweep settles every pending order whose expiry has passed, one order per
// transaction, with the same store-first discipline as cancellation: the
// compare-and-swap terminal write commits before the refund is deposited. A
// lost compare-and-swap means the order was delivered against or cancelled
// between the sweep's read and its write; the sweep skips it and moves on, so
// running the sweep twice over the same window is harmless.
type ExpireOrdersCommandHandler struct {
	uowFactory UoWFactory
	ledger     ports.Ledger
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates a handler for expiry sweep operations.
func NewExpireOrdersCommandHandler(
	uowFactory UoWFactory,
	ledger ports.Ledger,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "expire_orders_handler"),
	}
}

// Handle processes the sweep command and returns how many orders it expired.
//
// Failures on individual orders are logged and do not stop the sweep; the next
// run picks up whatever this one missed.
func (h ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	expirable, err := uow.OrderRepository().GetExpirable(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, target := range expirable {
		if err = h.expireOne(ctx, target); err != nil {
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				continue
			}
			h.logger.ErrorContext(ctx, "Failed to expire order",
				"order_id", target.ID().String(),
				"error", err,
			)
			continue
		}
		expired++
	}

	return expired, nil
}

// expireOne settles a single expired order in its own transaction and deposits
// the refund after the commit. A refund failure does not undo the expiry; it is
// logged as an unreconciled transaction.
func (h ExpireOrdersCommandHandler) expireOne(ctx context.Context, target *order.Order) error {
	expectedStatus := target.Status()
	expectedDelivered := target.DeliveredQuantity()

	refund, err := target.Expire()
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().UpdateStatusAndDelivered(
		ctx,
		target.ID(),
		target.Status(),
		target.DeliveredQuantity(),
		expectedStatus,
		expectedDelivered,
	); err != nil {
		return err
	}

	uow.TrackAggregate(target.ID(), target)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if refund > 0 {
		if err = h.ledger.Deposit(ctx, target.OwnerID(), refund); err != nil {
			h.logger.ErrorContext(ctx, "Unreconciled transaction: refund deposit failed after expiry committed",
				"order_id", target.ID().String(),
				"account_id", target.OwnerID().String(),
				"amount", refund,
				"ledger_error", err,
			)
		}
	}

	publishTrackedEvents(ctx, h.publisher, uow)
	return nil
}
