package order

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

// ErrDeliveryRecordIsNotConstructed is returned when a DeliveryRecord was not created
// through NewDeliveryRecord or RestoreDeliveryRecord.
var ErrDeliveryRecordIsNotConstructed = errors.New("DeliveryRecord must be created via NewDeliveryRecord constructor")

// DeliveryRecord is an append-only record of one accepted delivery against an order:
// who delivered, how many units were accepted, and what was paid for them.
// Records are owned by the order they reference and are written in the same
// transaction as the order mutation they describe.
type DeliveryRecord struct {
	id          kernel.UUID
	orderID     kernel.UUID
	delivererID kernel.UUID
	units       int
	payment     float64
	deliveredAt time.Time

	isConstructed bool
}

// NewDeliveryRecord creates a record for a freshly accepted delivery.
// Units must be positive and payment non-negative.
func NewDeliveryRecord(
	orderID kernel.UUID,
	delivererID kernel.UUID,
	units int,
	payment float64,
	deliveredAt time.Time,
) (*DeliveryRecord, error) {
	return RestoreDeliveryRecord(kernel.NewUUID(), orderID, delivererID, units, payment, deliveredAt)
}

// RestoreDeliveryRecord reconstructs a record from persistence, revalidating
// every field so corrupt rows cannot re-enter the domain.
func RestoreDeliveryRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	delivererID kernel.UUID,
	units int,
	payment float64,
	deliveredAt time.Time,
) (*DeliveryRecord, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		delivererID.Validate(),
	); err != nil {
		return nil, err
	}

	if units <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("units is invalid", fmt.Errorf("%d is not greater than 0", units))
	}
	if payment < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment is invalid", fmt.Errorf("%f is negative", payment))
	}

	return &DeliveryRecord{
		id:            id,
		orderID:       orderID,
		delivererID:   delivererID,
		units:         units,
		payment:       payment,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was created through a constructor.
func (r *DeliveryRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *DeliveryRecord) ID() kernel.UUID {
	return r.id
}

// OrderID returns the identifier of the order this delivery was accepted against.
func (r *DeliveryRecord) OrderID() kernel.UUID {
	return r.orderID
}

// DelivererID returns the identifier of the participant who delivered.
func (r *DeliveryRecord) DelivererID() kernel.UUID {
	return r.delivererID
}

// Units returns the number of units accepted in this delivery.
func (r *DeliveryRecord) Units() int {
	return r.units
}

// Payment returns the amount paid to the deliverer for this delivery.
func (r *DeliveryRecord) Payment() float64 {
	return r.payment
}

// DeliveredAt returns the time the delivery was accepted.
func (r *DeliveryRecord) DeliveredAt() time.Time {
	return r.deliveredAt
}
