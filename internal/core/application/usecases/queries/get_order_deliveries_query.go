package queries

import (
	"errors"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/guard"
)

var (
	ErrGetOrderDeliveriesQueryIsNotConstructed = errors.New(
		"GetOrderDeliveriesQuery must be created via NewGetOrderDeliveriesQuery constructor",
	)
)

// GetOrderDeliveriesQuery retrieves the delivery history of one order: who
// fulfilled it, how many units, and what each delivery paid.
type GetOrderDeliveriesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDeliveriesQuery creates a query for an order's delivery records.
// Validates the order identifier.
func NewGetOrderDeliveriesQuery(orderID kernel.UUID) (GetOrderDeliveriesQuery, error) {
	deliveriesQuery := GetOrderDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := deliveriesQuery.setOrderID(orderID); err != nil {
		return GetOrderDeliveriesQuery{}, err
	}

	return deliveriesQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderDeliveriesQueryIsNotConstructed if validation fails.
func (q GetOrderDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDeliveriesQueryIsNotConstructed)
}

// OrderID returns the order whose delivery history is requested.
func (q GetOrderDeliveriesQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderDeliveriesQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// DeliveryResponse represents one delivery against an order.
type DeliveryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	DelivererID kernel.UUID
	Units       int
	Payment     float64
	DeliveredAt time.Time
}
