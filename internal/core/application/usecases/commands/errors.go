package commands

import (
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
)

var (
	// ErrQuotaExceeded is returned when the creation policy denies another order
	// for the participant. Never retried.
	ErrQuotaExceeded = errors.New("participant has reached the active order limit")

	// ErrNotOrderOwner is returned when a cancellation request comes from anyone
	// but the order's owner.
	ErrNotOrderOwner = errors.New("only the order owner may cancel it")

	// ErrOrderNotActive is returned when a delivery targets an order that has
	// already reached a terminal state.
	ErrOrderNotActive = errors.New("order is no longer accepting deliveries")

	// ErrOrderNotCancellable is returned when a cancellation targets an order
	// that is already terminal, including the case where a competing transition
	// settled it first. No refund is issued: the winning transition already did.
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")

	// ErrItemMismatch is returned when the offered item does not match the
	// order's item specification.
	ErrItemMismatch = errors.New("offered item does not match the order")

	// ErrLedgerFailure wraps a declined or unreachable currency-provider call.
	// When it is returned, no store state was written for the operation.
	ErrLedgerFailure = errors.New("ledger operation failed")
)

// PersistenceError reports a store failure after a ledger mutation had already
// succeeded. Compensated tells whether the compensating ledger call went
// through; when false the amount is an unreconciled transaction, durably logged
// for operator recovery, and must not be retried automatically.
type PersistenceError struct {
	OrderID     kernel.UUID
	AccountID   kernel.UUID
	Amount      float64
	Compensated bool
	Err         error
}

func (e *PersistenceError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("store write failed after ledger mutation of %.2f for order %s (compensated): %v",
			e.Amount, e.OrderID, e.Err)
	}
	return fmt.Sprintf("store write failed after ledger mutation of %.2f for order %s (UNRECONCILED): %v",
		e.Amount, e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialDeliveryError reports a delivery that lost the status race after the
// deliverer had already been paid. The payment stands (the goods were genuinely
// handed over) but only UnitsRecorded of the UnitsPaid could still be applied
// to the order; zero when a competing transition settled the order first.
type PartialDeliveryError struct {
	OrderID       kernel.UUID
	UnitsPaid     int
	UnitsRecorded int
	Payment       float64
}

func (e *PartialDeliveryError) Error() string {
	return fmt.Sprintf("delivery against order %s lost a settlement race: paid for %d units (%.2f), recorded %d",
		e.OrderID, e.UnitsPaid, e.Payment, e.UnitsRecorded)
}
