package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TrackedAggregate is an aggregate touched during a unit of work. Handlers drain
// the tracked set after a successful commit to publish domain events.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control, transaction-bound repositories, and tracking
// of the aggregates modified inside the transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// StatsRepository returns a StatsRepository bound to the current transaction.
	StatsRepository() StatsRepository

	// TrackAggregate registers an aggregate as modified within this unit of work.
	// Repositories track aggregates they persist whole; handlers track aggregates
	// they mutate in memory and persist through compare-and-swap writes.
	TrackAggregate(id kernel.UUID, aggregate any)

	// TrackedAggregates returns the aggregates modified within this unit of work,
	// in modification order.
	TrackedAggregates() []TrackedAggregate
}
