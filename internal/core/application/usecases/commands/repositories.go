// Package commands contains the order lifecycle engine: the business operations
// that move an order through creation, delivery, cancellation, and expiry.
// Every transition couples a ledger mutation with a store mutation under a
// strict ordering discipline, so the money ledger and the quantity ledger never
// diverge. All commands follow a consistent pattern: validation, settlement
// ordering, transaction management, and event publication after commit.
package commands

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure the order mutation, its delivery records, and the
// participant statistics commit or roll back together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StatsRepoFactory provides access to the stats repository within a transaction.
	StatsRepoFactory interface {
		StatsRepository() ports.StatsRepository
	}

	// AggregateTracker exposes the aggregates modified within the transaction.
	// Handlers register aggregates they mutate in memory and drain the tracked
	// set after a successful commit to publish domain events.
	AggregateTracker interface {
		TrackAggregate(id kernel.UUID, aggregate any)
		TrackedAggregates() []ports.TrackedAggregate
	}

	// UoW manages a transaction spanning orders and participant statistics.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	// ... repository operations ...
	//
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StatsRepoFactory
		AggregateTracker
	}

	// UoWFactory creates new unit of work instances, one per command execution.
	UoWFactory interface {
		Create() UoW
	}
)
