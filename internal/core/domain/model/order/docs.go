// Package order provides domain entities and business logic for the order board's
// settlement core. It implements the Order aggregate root with partial-fulfillment
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns quantities, pricing, and lifecycle state
//   - Status: A state machine that enforces valid order status transitions
//   - ItemSpec: A value object describing the requested item
//   - DeliveryRecord: An append-only record of an accepted delivery
//   - Domain events emitted by lifecycle transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owner, item spec, and positive quantity
//   - Delivered quantity only grows, never exceeds the ordered quantity, and only
//     changes while the order is Pending
//   - An order is Completed exactly when delivered quantity equals ordered quantity
//   - Pending is the only non-terminal status; Completed, Cancelled, and Expired
//     are terminal and sticky
//   - Refunds cover the undelivered value only; the creation fee is not refundable
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
