package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
)

// CreationPolicy decides whether a participant may post another order.
// The lifecycle engine supplies the participant's current count of pending
// orders and consumes only the yes/no outcome; quota rules live behind this
// port.
type CreationPolicy interface {
	CanCreateOrder(ctx context.Context, participantID kernel.UUID, currentActiveCount int) (bool, error)
}
