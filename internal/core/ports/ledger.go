package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
)

// Ledger is the gateway to the external currency provider. It is stateless and
// performs no retries; the lifecycle engine owns all compensation logic and
// treats a missing response the same as a failure.
//
// Implementations must reject non-positive amounts before any call reaches the
// provider.
type Ledger interface {
	// Withdraw removes amount from the participant's account.
	Withdraw(ctx context.Context, accountID kernel.UUID, amount float64) error

	// Deposit adds amount to the participant's account.
	Deposit(ctx context.Context, accountID kernel.UUID, amount float64) error

	// Balance returns the participant's current balance.
	// The engine never caches the result.
	Balance(ctx context.Context, accountID kernel.UUID) (float64, error)
}
