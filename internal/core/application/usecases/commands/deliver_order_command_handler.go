package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// DeliverOrderCommandHandler handles the business logic for fulfilling an order.
//
// Settlement ordering is payment-first: the deliverer is paid before the store
// write, because the goods change hands at the moment of the call and a paid
// deliverer with a lost record is recoverable while an unpaid deliverer with a
// recorded delivery is theft. The store write is a compare-and-swap on the
// order's status and delivered quantity, which serializes concurrent deliveries
// per order without locks.
//
// A lost compare-and-swap means another transition settled between our read and
// our write. The handler re-reads once and retries with whatever quantity the
// order can still accept; the payment already made stands either way, and any
// shortfall is reported through PartialDeliveryError.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     ports.Ledger
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery operations.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	ledger ports.Ledger,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "deliver_order_handler"),
	}
}

// Handle processes the delivery command and returns the record of what was
// actually accepted and paid.
//
// Steps: validate, read the order, check it is still accepting deliveries and
// the offered item matches, clamp the offered quantity to the remainder, pay
// the deliverer, then apply the delivery through a compare-and-swap write
// together with the delivery record and the stats deltas.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.DeliveryRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.Status().ValidateActive(); err != nil {
		return nil, ErrOrderNotActive
	}
	if !target.ItemSpec().Matches(cmd.OfferedItem()) {
		return nil, ErrItemMismatch
	}

	units := target.AcceptableQuantity(cmd.OfferedQuantity())
	if units == 0 {
		return nil, order.ErrNothingToDeliver
	}

	payment := float64(units) * target.PricePerUnit()
	if payment > 0 {
		if err = h.ledger.Deposit(ctx, cmd.DelivererID(), payment); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLedgerFailure, err)
		}
	}

	record, err := h.settle(ctx, uow, target, cmd, units, payment)
	if err == nil {
		publishTrackedEvents(ctx, h.publisher, uow)
		return record, nil
	}
	if !errors.Is(err, errs.ErrVersionIsInvalid) {
		return nil, h.compensate(ctx, cmd, target, payment, err)
	}

	// Lost the race: another transition settled between our read and our write.
	// Re-read once and apply whatever the order can still accept. The payment
	// stands regardless.
	return h.retry(ctx, cmd, units, payment)
}

// retry re-reads the order after a lost compare-and-swap and applies the
// delivery against the fresh state, once. The recorded quantity is clamped to
// the fresh remainder, never above the units already paid for.
func (h DeliverOrderCommandHandler) retry(
	ctx context.Context,
	cmd DeliverOrderCommand,
	unitsPaid int,
	payment float64,
) (*order.DeliveryRecord, error) {
	uow := h.uowFactory.Create()

	fresh, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, h.compensationlessLoss(ctx, cmd, unitsPaid, payment, 0, err)
	}

	if fresh.Status().ValidateActive() != nil || fresh.RemainingQuantity() == 0 {
		return nil, h.compensationlessLoss(ctx, cmd, unitsPaid, payment, 0, nil)
	}

	units := fresh.AcceptableQuantity(unitsPaid)

	record, err := h.settle(ctx, uow, fresh, cmd, units, payment)
	if err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, h.compensationlessLoss(ctx, cmd, unitsPaid, payment, 0, err)
		}
		return nil, h.compensate(ctx, cmd, fresh, payment, err)
	}

	publishTrackedEvents(ctx, h.publisher, uow)

	if units < unitsPaid {
		return record, h.compensationlessLoss(ctx, cmd, unitsPaid, payment, units, nil)
	}
	return record, nil
}

// settle applies the delivery to the aggregate and persists everything in one
// transaction: the delivery record, the compare-and-swap write of status and
// delivered quantity, and the stats deltas for the deliverer and, on
// completion, the owner.
func (h DeliverOrderCommandHandler) settle(
	ctx context.Context,
	uow UoW,
	target *order.Order,
	cmd DeliverOrderCommand,
	units int,
	payment float64,
) (*order.DeliveryRecord, error) {
	expectedStatus := target.Status()
	expectedDelivered := target.DeliveredQuantity()

	record, err := target.AcceptDelivery(cmd.DelivererID(), units, payment, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().AppendDelivery(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().UpdateStatusAndDelivered(
		ctx,
		target.ID(),
		target.Status(),
		target.DeliveredQuantity(),
		expectedStatus,
		expectedDelivered,
	); err != nil {
		return nil, err
	}

	delivererStats, err := uow.StatsRepository().GetOrCreate(ctx, cmd.DelivererID())
	if err != nil {
		return nil, err
	}
	delivererStats.ApplyDelivery(payment)
	if err = uow.StatsRepository().Save(ctx, delivererStats); err != nil {
		return nil, err
	}

	if target.Status() == order.Completed {
		ownerStats, statsErr := uow.StatsRepository().GetOrCreate(ctx, target.OwnerID())
		if statsErr != nil {
			return nil, statsErr
		}
		ownerStats.ApplyOrderCompleted()
		if statsErr = uow.StatsRepository().Save(ctx, ownerStats); statsErr != nil {
			return nil, statsErr
		}
	}

	uow.TrackAggregate(target.ID(), target)

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// compensate withdraws the payment back from the deliverer after a hard store
// failure. A failed compensation is logged as an unreconciled transaction.
func (h DeliverOrderCommandHandler) compensate(
	ctx context.Context,
	cmd DeliverOrderCommand,
	target *order.Order,
	payment float64,
	cause error,
) error {
	var compensationErr error
	if payment > 0 {
		compensationErr = h.ledger.Withdraw(ctx, cmd.DelivererID(), payment)
	}
	if compensationErr != nil {
		h.logger.ErrorContext(ctx, "Unreconciled transaction: compensating withdrawal failed after store write failed",
			"order_id", target.ID().String(),
			"account_id", cmd.DelivererID().String(),
			"amount", payment,
			"store_error", cause,
			"ledger_error", compensationErr,
		)
	}

	return &PersistenceError{
		OrderID:     target.ID(),
		AccountID:   cmd.DelivererID(),
		Amount:      payment,
		Compensated: compensationErr == nil,
		Err:         cause,
	}
}

// compensationlessLoss reports a delivery that could not be fully recorded
// after the deliverer was already paid. No money moves back: the goods were
// genuinely handed over and the payment stands.
func (h DeliverOrderCommandHandler) compensationlessLoss(
	ctx context.Context,
	cmd DeliverOrderCommand,
	unitsPaid int,
	payment float64,
	unitsRecorded int,
	cause error,
) error {
	h.logger.WarnContext(ctx, "Delivery lost a settlement race after payment",
		"order_id", cmd.OrderID().String(),
		"deliverer_id", cmd.DelivererID().String(),
		"units_paid", unitsPaid,
		"units_recorded", unitsRecorded,
		"payment", payment,
		"cause", cause,
	)

	return &PartialDeliveryError{
		OrderID:       cmd.OrderID(),
		UnitsPaid:     unitsPaid,
		UnitsRecorded: unitsRecorded,
		Payment:       payment,
	}
}
