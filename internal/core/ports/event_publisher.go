package ports

import (
	"context"

	"orderboard/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to external collaborators (notification
// sinks, webhooks, UIs). Handlers publish after their transaction commits;
// publishing is best-effort and never fails a lifecycle transition.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent)
}
