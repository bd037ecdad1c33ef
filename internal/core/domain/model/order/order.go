package order

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNothingToDeliver is returned when a delivery offers no units the order can
	// still accept.
	ErrNothingToDeliver = errors.New("order has no remaining quantity to deliver")
)

// Order represents a standing request to acquire a quantity of an item at a fixed
// unit price. It is the aggregate root of the settlement core and owns the
// partial-fulfillment lifecycle from creation through deliveries to a terminal
// state.
//
// Order maintains these invariants:
//   - 0 <= deliveredQuantity <= quantity at all times
//   - deliveredQuantity only changes while the status is Pending, and only grows
//   - status is Completed exactly when deliveredQuantity equals quantity
//   - terminal statuses (Completed, Cancelled, Expired) are sticky
//
// All money amounts derive from the immutable quantity, pricePerUnit, and fee:
// the total withdrawn at creation is quantity*pricePerUnit+fee, each delivery
// pays units*pricePerUnit, and a cancellation or expiry refunds the undelivered
// value only. The fee is never refunded.
//
// Lifecycle transitions record domain events on the aggregate; the application
// layer publishes them after the owning transaction commits.
type Order struct {
	id                kernel.UUID
	ownerID           kernel.UUID
	itemSpec          ItemSpec
	quantity          int
	pricePerUnit      float64
	fee               float64
	deliveredQuantity int
	createdAt         time.Time
	expiresAt         time.Time
	status            Status

	events []DomainEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new pending order and records its CreatedEvent.
//
// Validation rules:
//   - id and ownerID must be valid UUIDs
//   - itemSpec must be constructed via NewItemSpec
//   - quantity must be positive
//   - pricePerUnit and fee must be non-negative
//   - expiresAt must be after createdAt
//
// Example:
//
//	spec, _ := order.NewItemSpec("oak_log", nil)
//	o, err := order.NewOrder(kernel.NewUUID(), ownerID, spec, 64, 2.5, 10,
//	    time.Now(), time.Now().Add(24*time.Hour))
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	itemSpec ItemSpec,
	quantity int,
	pricePerUnit float64,
	fee float64,
	createdAt time.Time,
	expiresAt time.Time,
) (*Order, error) {
	o, err := RestoreOrder(id, ownerID, itemSpec, quantity, pricePerUnit, fee, 0, createdAt, expiresAt, Pending)
	if err != nil {
		return nil, err
	}

	o.recordEvent(CreatedEvent{Order: o})
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, revalidating every field
// and the cross-field invariants. It records no events.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	itemSpec ItemSpec,
	quantity int,
	pricePerUnit float64,
	fee float64,
	deliveredQuantity int,
	createdAt time.Time,
	expiresAt time.Time,
	status Status,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
		order.setItemSpec(itemSpec),
		order.setQuantity(quantity),
		order.setPricePerUnit(pricePerUnit),
		order.setFee(fee),
		order.setExpiresAt(expiresAt),
		order.setStatus(status),
		order.setDeliveredQuantity(deliveredQuantity),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the identifier of the participant who posted the order.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// ItemSpec returns the specification of the requested item.
func (o *Order) ItemSpec() ItemSpec {
	return o.itemSpec
}

// Quantity returns the total units requested.
func (o *Order) Quantity() int {
	return o.quantity
}

// PricePerUnit returns the unit price paid per delivered unit.
func (o *Order) PricePerUnit() float64 {
	return o.pricePerUnit
}

// Fee returns the flat creation fee charged up front.
func (o *Order) Fee() float64 {
	return o.fee
}

// DeliveredQuantity returns the units fulfilled so far.
func (o *Order) DeliveredQuantity() int {
	return o.deliveredQuantity
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ExpiresAt returns the time after which the expiry sweep settles the order.
func (o *Order) ExpiresAt() time.Time {
	return o.expiresAt
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// RemainingQuantity returns the units the order can still accept.
func (o *Order) RemainingQuantity() int {
	return o.quantity - o.deliveredQuantity
}

// TotalCost returns the amount withdrawn from the owner at creation:
// quantity*pricePerUnit plus the flat fee.
func (o *Order) TotalCost() float64 {
	return float64(o.quantity)*o.pricePerUnit + o.fee
}

// RefundAmount returns the value of the undelivered quantity.
// The creation fee is not part of the refund.
func (o *Order) RefundAmount() float64 {
	return float64(o.RemainingQuantity()) * o.pricePerUnit
}

// IsExpired reports whether the order's expiry has passed at the given time.
// Expiry alone does not change state; the sweep drives the Expire transition.
func (o *Order) IsExpired(now time.Time) bool {
	return now.After(o.expiresAt)
}

// AcceptableQuantity returns how many of the offered units the order can accept:
// min(offered, remaining), never negative.
func (o *Order) AcceptableQuantity(offered int) int {
	remaining := o.RemainingQuantity()
	if offered < remaining {
		remaining = offered
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AcceptDelivery applies an accepted delivery of the given units to the order.
//
// Business rules:
//   - The order must be Pending
//   - Units must be positive and no more than the remaining quantity
//   - Reaching the full quantity transitions the order to Completed
//
// The payment is the amount actually deposited to the deliverer for this
// delivery. Settlement computes it (normally units * pricePerUnit) and the
// aggregate records it, so a delivery settled against a stale read keeps its
// true paid amount on the record.
//
// Returns the DeliveryRecord describing the accepted units and their payment.
// Records a DeliveredEvent and, on completion, a CompletedEvent.
func (o *Order) AcceptDelivery(delivererID kernel.UUID, units int, payment float64, deliveredAt time.Time) (*DeliveryRecord, error) {
	if err := o.status.ValidateActive(); err != nil {
		return nil, err
	}
	if units <= 0 || o.RemainingQuantity() <= 0 {
		return nil, ErrNothingToDeliver
	}
	if units > o.RemainingQuantity() {
		return nil, errs.NewValueIsOutOfRangeError("units", units, 1, o.RemainingQuantity())
	}

	record, err := NewDeliveryRecord(o.id, delivererID, units, payment, deliveredAt)
	if err != nil {
		return nil, err
	}

	o.deliveredQuantity += units
	o.recordEvent(DeliveredEvent{Order: o, Record: record})

	if o.deliveredQuantity == o.quantity {
		newStatus, statusErr := o.status.Complete()
		if statusErr != nil {
			return nil, statusErr
		}
		o.status = newStatus
		o.recordEvent(CompletedEvent{Order: o})
	}

	return record, nil
}

// Cancel withdraws a pending order.
//
// Returns the refund owed to the owner: the undelivered value, fee excluded.
// Records a CancelledEvent. Fails if the order is not Pending.
func (o *Order) Cancel() (float64, error) {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return 0, err
	}

	refund := o.RefundAmount()
	o.status = newStatus
	o.recordEvent(CancelledEvent{Order: o, Refund: refund})
	return refund, nil
}

// Expire settles a pending order past its expiry.
//
// Returns the refund owed to the owner: the undelivered value, fee excluded.
// Records an ExpiredEvent. Fails if the order is not Pending.
func (o *Order) Expire() (float64, error) {
	newStatus, err := o.status.Expire()
	if err != nil {
		return 0, err
	}

	refund := o.RefundAmount()
	o.status = newStatus
	o.recordEvent(ExpiredEvent{Order: o, Refund: refund})
	return refund, nil
}

// PendingEvents returns the domain events recorded since construction or the
// last ClearEvents call, in the order they occurred.
func (o *Order) PendingEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents drops the recorded events after they have been published.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) recordEvent(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setItemSpec(itemSpec ItemSpec) error {
	if err := itemSpec.Validate(); err != nil {
		return err
	}
	o.itemSpec = itemSpec
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPricePerUnit(pricePerUnit float64) error {
	if pricePerUnit < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricePerUnit is invalid", fmt.Errorf("%f is negative", pricePerUnit))
	}
	o.pricePerUnit = pricePerUnit
	return nil
}

func (o *Order) setFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fee is invalid", fmt.Errorf("%f is negative", fee))
	}
	o.fee = fee
	return nil
}

func (o *Order) setExpiresAt(expiresAt time.Time) error {
	if !expiresAt.After(o.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("expiresAt is invalid", fmt.Errorf("expiry %s is not after creation %s", expiresAt, o.createdAt))
	}
	o.expiresAt = expiresAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setDeliveredQuantity must run after setQuantity and setStatus: the upper bound
// and the completion invariant depend on both.
func (o *Order) setDeliveredQuantity(delivered int) error {
	if delivered < 0 || delivered > o.quantity {
		return errs.NewValueIsOutOfRangeError("deliveredQuantity", delivered, 0, o.quantity)
	}
	if (o.status == Completed) != (delivered == o.quantity) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredQuantity is invalid",
			fmt.Errorf("%d of %d delivered is inconsistent with status %s", delivered, o.quantity, o.status),
		)
	}
	o.deliveredQuantity = delivered
	return nil
}
