package ports

import (
	"context"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and their
// delivery records. Implementations must make UpdateStatusAndDelivered a genuine
// compare-and-swap: per-order serialization in the lifecycle engine depends on it.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// A duplicate identifier surfaces as errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatusAndDelivered writes the order's status and delivered quantity
	// only if the stored row still matches both expected prior values.
	// Returns errs.ErrObjectNotFound when the order does not exist and
	// errs.ErrVersionIsInvalid when another transition won the race; callers
	// must then re-read and decide whether to retry or abort.
	UpdateStatusAndDelivered(
		ctx context.Context,
		id kernel.UUID,
		newStatus order.Status,
		newDelivered int,
		expectedStatus order.Status,
		expectedDelivered int,
	) error

	// GetAllByOwner retrieves every order posted by the given participant,
	// newest first.
	GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*order.Order, error)

	// CountActiveByOwner returns the number of Pending orders the participant
	// currently holds. Used for creation-quota decisions.
	CountActiveByOwner(ctx context.Context, ownerID kernel.UUID) (int, error)

	// GetAllPending retrieves every Pending order, newest first.
	// This is the browse surface for deliverers.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetExpirable retrieves all Pending orders whose expiry precedes the cutoff.
	// The expiry sweep drives each through the Expire transition.
	GetExpirable(ctx context.Context, before time.Time) ([]*order.Order, error)

	// AppendDelivery persists a delivery record. It must run in the same
	// transaction as the UpdateStatusAndDelivered call for the same order.
	AppendDelivery(ctx context.Context, record *order.DeliveryRecord) error

	// GetDeliveries retrieves the delivery records for an order, oldest first.
	GetDeliveries(ctx context.Context, orderID kernel.UUID) ([]*order.DeliveryRecord, error)

	// PurgeTerminalBefore deletes terminal orders created before the cutoff,
	// together with their delivery records, and reports how many orders went.
	// Retention policy only; the lifecycle engine never deletes orders.
	PurgeTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
