package queries

import (
	"database/sql"
	"encoding/json"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// orderColumns is the select list every order query shares. The scan in
// scanOrderRows depends on this exact column order.
const orderColumns = `
		id,
		owner_id,
		item_type,
		item_attributes,
		quantity,
		price_per_unit,
		fee,
		delivered_quantity,
		status,
		created_at,
		expires_at`

func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var (
			id             uuid.UUID
			ownerID        uuid.UUID
			itemAttributes string
			statusValue    int
			orderResp      OrderResponse
		)

		err := rows.Scan(
			&id,
			&ownerID,
			&orderResp.ItemType,
			&itemAttributes,
			&orderResp.Quantity,
			&orderResp.PricePerUnit,
			&orderResp.Fee,
			&orderResp.DeliveredQuantity,
			&statusValue,
			&orderResp.CreatedAt,
			&orderResp.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		owner, ownerErr := kernel.UUIDFromBytes(ownerID[:])
		if ownerErr != nil {
			return nil, ownerErr
		}
		orderResp.OwnerID = owner

		if itemAttributes != "" {
			if jsonErr := json.Unmarshal([]byte(itemAttributes), &orderResp.ItemAttributes); jsonErr != nil {
				return nil, jsonErr
			}
		}

		orderResp.Status = order.Status(statusValue)
		orderResp.CreatedAt = orderResp.CreatedAt.UTC()
		orderResp.ExpiresAt = orderResp.ExpiresAt.UTC()

		orders = append(orders, orderResp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
