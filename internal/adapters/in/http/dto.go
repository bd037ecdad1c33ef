package http

import (
	"time"

	"orderboard/internal/core/application/usecases/queries"
)

// ErrorDTO is the uniform error body for all endpoints.
type ErrorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body for POST /api/v1/orders.
// ExpiresAt is optional; omitted orders get the configured default TTL.
type CreateOrderRequest struct {
	OwnerID        string            `json:"owner_id"`
	ItemType       string            `json:"item_type"`
	ItemAttributes map[string]string `json:"item_attributes,omitempty"`
	Quantity       int               `json:"quantity"`
	PricePerUnit   float64           `json:"price_per_unit"`
	Fee            float64           `json:"fee"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
}

// CreateOrderResponse returns the identifier of the posted order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// DeliverOrderRequest is the body for POST /api/v1/orders/:id/deliveries.
type DeliverOrderRequest struct {
	DelivererID    string            `json:"deliverer_id"`
	ItemType       string            `json:"item_type"`
	ItemAttributes map[string]string `json:"item_attributes,omitempty"`
	Quantity       int               `json:"quantity"`
}

// DeliverOrderResponse reports what the delivery actually settled to. Partial
// is set when the deliverer was paid for more units than could be recorded.
type DeliverOrderResponse struct {
	OrderID       string  `json:"order_id"`
	UnitsAccepted int     `json:"units_accepted"`
	Payment       float64 `json:"payment"`
	Partial       bool    `json:"partial,omitempty"`
}

// CancelOrderRequest is the body for POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	RequesterID string `json:"requester_id"`
}

// CancelOrderResponse reports the refund deposited back to the owner.
type CancelOrderResponse struct {
	OrderID string  `json:"order_id"`
	Refund  float64 `json:"refund"`
}

// OrderDTO is the wire representation of one order on the board.
type OrderDTO struct {
	ID                string            `json:"id"`
	OwnerID           string            `json:"owner_id"`
	ItemType          string            `json:"item_type"`
	ItemAttributes    map[string]string `json:"item_attributes,omitempty"`
	Quantity          int               `json:"quantity"`
	PricePerUnit      float64           `json:"price_per_unit"`
	Fee               float64           `json:"fee"`
	DeliveredQuantity int               `json:"delivered_quantity"`
	RemainingQuantity int               `json:"remaining_quantity"`
	Status            string            `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	ExpiresAt         time.Time         `json:"expires_at"`
}

// DeliveryDTO is the wire representation of one delivery record.
type DeliveryDTO struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	DelivererID string    `json:"deliverer_id"`
	Units       int       `json:"units"`
	Payment     float64   `json:"payment"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// ParticipantStatsDTO is the wire representation of a participant's totals.
type ParticipantStatsDTO struct {
	ParticipantID   string  `json:"participant_id"`
	OrdersCreated   int     `json:"orders_created"`
	OrdersCompleted int     `json:"orders_completed"`
	OrdersDelivered int     `json:"orders_delivered"`
	TotalSpent      float64 `json:"total_spent"`
	TotalEarned     float64 `json:"total_earned"`
}

// BalanceDTO is the wire representation of a participant's current balance.
type BalanceDTO struct {
	ParticipantID string  `json:"participant_id"`
	Balance       float64 `json:"balance"`
}

func toOrderResponses(orders []queries.OrderResponse) []OrderDTO {
	response := make([]OrderDTO, len(orders))
	for i, o := range orders {
		response[i] = OrderDTO{
			ID:                o.ID.String(),
			OwnerID:           o.OwnerID.String(),
			ItemType:          o.ItemType,
			ItemAttributes:    o.ItemAttributes,
			Quantity:          o.Quantity,
			PricePerUnit:      o.PricePerUnit,
			Fee:               o.Fee,
			DeliveredQuantity: o.DeliveredQuantity,
			RemainingQuantity: o.RemainingQuantity(),
			Status:            o.Status.String(),
			CreatedAt:         o.CreatedAt,
			ExpiresAt:         o.ExpiresAt,
		}
	}

	return response
}
