package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for posting an order.
//
// Settlement ordering is ledger-first: the owner's funds are withdrawn before
// anything is written, so a declined withdrawal aborts the operation with no
// state to unwind. A store failure after a successful withdrawal triggers the
// one genuine compensating transaction in the system: the total cost is
// deposited back, and a failed compensation is logged as an unreconciled
// transaction for operator recovery.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     ports.Ledger
	policy     ports.CreationPolicy
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	ledger ports.Ledger,
	policy ports.CreationPolicy,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		policy:     policy,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command.
//
// Steps: validate, consult the creation policy, withdraw the total cost
// (quantity*price+fee), then insert the order and the owner's stats deltas in
// one transaction, and finally publish the created event.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	activeCount, err := uow.OrderRepository().CountActiveByOwner(ctx, cmd.OwnerID())
	if err != nil {
		return err
	}

	allowed, err := h.policy.CanCreateOrder(ctx, cmd.OwnerID(), activeCount)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrQuotaExceeded
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OwnerID(),
		cmd.ItemSpec(),
		cmd.Quantity(),
		cmd.PricePerUnit(),
		cmd.Fee(),
		now,
		cmd.ExpiresAt(),
	)
	if err != nil {
		return err
	}

	totalCost := newOrder.TotalCost()
	if totalCost > 0 {
		if err = h.ledger.Withdraw(ctx, cmd.OwnerID(), totalCost); err != nil {
			return fmt.Errorf("%w: %w", ErrLedgerFailure, err)
		}
	}

	if err = h.persist(ctx, uow, newOrder, totalCost); err != nil {
		return h.compensate(ctx, newOrder, totalCost, err)
	}

	publishTrackedEvents(ctx, h.publisher, uow)
	return nil
}

// persist writes the order and the owner's stats deltas in one transaction.
func (h CreateOrderCommandHandler) persist(ctx context.Context, uow UoW, newOrder *order.Order, totalCost float64) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	ownerStats, err := uow.StatsRepository().GetOrCreate(ctx, newOrder.OwnerID())
	if err != nil {
		return err
	}
	ownerStats.ApplyOrderCreated(totalCost)
	if err = uow.StatsRepository().Save(ctx, ownerStats); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// compensate deposits the withdrawn total back to the owner after a store
// failure. A failed compensation is the unreconciled case: it is logged with
// everything an operator needs and is never retried automatically, since a
// blind retry risks double-compensation.
func (h CreateOrderCommandHandler) compensate(ctx context.Context, newOrder *order.Order, totalCost float64, cause error) error {
	var compensationErr error
	if totalCost > 0 {
		compensationErr = h.ledger.Deposit(ctx, newOrder.OwnerID(), totalCost)
	}
	if compensationErr != nil {
		h.logger.ErrorContext(ctx, "Unreconciled transaction: compensating deposit failed after store write failed",
			"order_id", newOrder.ID().String(),
			"account_id", newOrder.OwnerID().String(),
			"amount", totalCost,
			"store_error", cause,
			"ledger_error", compensationErr,
		)
	}

	return &PersistenceError{
		OrderID:     newOrder.ID(),
		AccountID:   newOrder.OwnerID(),
		Amount:      totalCost,
		Compensated: compensationErr == nil,
		Err:         cause,
	}
}
