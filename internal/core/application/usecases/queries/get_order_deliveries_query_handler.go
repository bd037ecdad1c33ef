package queries

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDeliveriesQueryHandler retrieves an order's delivery records from the
// database, oldest first, so the history reads in the order it happened.
type GetOrderDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDeliveriesQueryHandler creates a handler for delivery history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderDeliveriesQueryHandler(db *gorm.DB) GetOrderDeliveriesQueryHandler {
	return GetOrderDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's deliveries, oldest first.
func (h GetOrderDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			deliverer_id,
			units,
			payment,
			delivered_at
		FROM delivery_records
		WHERE order_id = ?
		ORDER BY delivered_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			orderID      uuid.UUID
			delivererID  uuid.UUID
			deliveryResp DeliveryResponse
		)

		err = rows.Scan(
			&id,
			&orderID,
			&delivererID,
			&deliveryResp.Units,
			&deliveryResp.Payment,
			&deliveryResp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		if deliveryResp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if deliveryResp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if deliveryResp.DelivererID, err = kernel.UUIDFromBytes(delivererID[:]); err != nil {
			return nil, err
		}
		deliveryResp.DeliveredAt = deliveryResp.DeliveredAt.UTC()

		deliveries = append(deliveries, deliveryResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
