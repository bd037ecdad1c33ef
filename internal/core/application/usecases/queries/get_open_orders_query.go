// Package queries contains the read side of the order board: browse surfaces
// for deliverers, owner views, delivery histories, and participant statistics.
// Queries bypass the aggregate layer and read projections straight from the
// database.
package queries

import (
	"errors"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves all orders still accepting deliveries.
// This is the browse surface deliverers use to find work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s: %d of %d %s at %.2f\n",
//	        o.ID, o.DeliveredQuantity, o.Quantity, o.ItemType, o.PricePerUnit)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query that fetches all pending orders.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenOrdersQueryIsNotConstructed if validation fails.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// OrderResponse represents one order row on the board.
type OrderResponse struct {
	ID                kernel.UUID
	OwnerID           kernel.UUID
	ItemType          string
	ItemAttributes    map[string]string
	Quantity          int
	PricePerUnit      float64
	Fee               float64
	DeliveredQuantity int
	Status            order.Status
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

// RemainingQuantity returns the units the order can still accept.
func (r OrderResponse) RemainingQuantity() int {
	return r.Quantity - r.DeliveredQuantity
}
