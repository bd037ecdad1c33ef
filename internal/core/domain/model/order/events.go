package order

// DomainEvent is implemented by every event an Order records during a lifecycle
// transition. Events are collected on the aggregate and published by the
// application layer after the owning transaction commits; the core never
// delivers them itself.
type DomainEvent interface {
	// EventName returns the stable event identifier used by event sinks.
	EventName() string
}

// CreatedEvent is recorded when an order is created and funded.
type CreatedEvent struct {
	Order *Order
}

// EventName identifies the event for sinks.
func (CreatedEvent) EventName() string { return "order.created" }

// DeliveredEvent is recorded when a delivery is accepted against an order.
// Record carries the accepted quantity and the payment made for it.
type DeliveredEvent struct {
	Order  *Order
	Record *DeliveryRecord
}

// EventName identifies the event for sinks.
func (DeliveredEvent) EventName() string { return "order.delivered" }

// CompletedEvent is recorded when a delivery brings the delivered quantity up to
// the ordered quantity. It always accompanies a DeliveredEvent.
type CompletedEvent struct {
	Order *Order
}

// EventName identifies the event for sinks.
func (CompletedEvent) EventName() string { return "order.completed" }

// CancelledEvent is recorded when the owner withdraws a pending order.
// Refund is the undelivered value returned to the owner; the creation fee is retained.
type CancelledEvent struct {
	Order  *Order
	Refund float64
}

// EventName identifies the event for sinks.
func (CancelledEvent) EventName() string { return "order.cancelled" }

// ExpiredEvent is recorded when the expiry sweep settles a pending order.
// Refund is the undelivered value returned to the owner; the creation fee is retained.
type ExpiredEvent struct {
	Order  *Order
	Refund float64
}

// EventName identifies the event for sinks.
func (ExpiredEvent) EventName() string { return "order.expired" }
