package commands

import (
	"context"

	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	PendingEvents() []order.DomainEvent
	ClearEvents()
}

// publishTrackedEvents drains the domain events recorded on the aggregates a
// committed unit of work touched and hands them to the publisher. Called only
// after a successful commit; events from rolled-back transactions are never
// published.
func publishTrackedEvents(ctx context.Context, publisher ports.EventPublisher, tracker AggregateTracker) {
	if publisher == nil {
		return
	}

	for _, tracked := range tracker.TrackedAggregates() {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}

		events := source.PendingEvents()
		if len(events) > 0 {
			publisher.Publish(ctx, events...)
		}
		source.ClearEvents()
	}
}
