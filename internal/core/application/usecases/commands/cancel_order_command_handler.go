package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// CancelOrderCommandHandler handles the business logic for withdrawing an order.
//
// Settlement ordering is store-first, the mirror image of creation: the
// compare-and-swap terminal write commits before the refund is deposited, so a
// crash between the two can never refund twice. A refund that then fails is
// logged as an unreconciled transaction and the cancellation stands; the order
// is terminal either way.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     ports.Ledger
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	ledger ports.Ledger,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the cancellation command and returns the refund deposited
// back to the owner: the undelivered value, fee excluded.
//
// Only the order's owner may cancel, and only while the order is Pending. A
// lost compare-and-swap means a competing transition settled the order first;
// the cancellation is rejected without a refund because the winning transition
// already settled the money.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (float64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	if !target.OwnerID().IsEqual(cmd.RequesterID()) {
		return 0, ErrNotOrderOwner
	}

	expectedStatus := target.Status()
	expectedDelivered := target.DeliveredQuantity()

	refund, err := target.Cancel()
	if err != nil {
		return 0, ErrOrderNotCancellable
	}

	if err = uow.Begin(ctx); err != nil {
		return 0, err
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
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return 0, ErrOrderNotCancellable
		}
		return 0, err
	}

	uow.TrackAggregate(target.ID(), target)

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	// The order is terminal from here on. A refund failure does not undo the
	// cancellation; it becomes an unreconciled transaction for operator recovery.
	if refund > 0 {
		if err = h.ledger.Deposit(ctx, target.OwnerID(), refund); err != nil {
			h.logger.ErrorContext(ctx, "Unreconciled transaction: refund deposit failed after cancellation committed",
				"order_id", target.ID().String(),
				"account_id", target.OwnerID().String(),
				"amount", refund,
				"ledger_error", err,
			)
		}
	}

	publishTrackedEvents(ctx, h.publisher, uow)
	return refund, nil
}
