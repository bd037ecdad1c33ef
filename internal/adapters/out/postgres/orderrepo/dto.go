// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its delivery records, handling the conversion between domain
// entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by owner, status, and expiry to serve the board's read patterns and
// the expiry sweep.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID           uuid.UUID `gorm:"type:uuid;index"`
	ItemType          string
	ItemAttributes    string `gorm:"type:text"`
	Quantity          int
	PricePerUnit      float64
	Fee               float64
	DeliveredQuantity int
	Status            int       `gorm:"index"`
	CreatedAt         time.Time
	ExpiresAt         time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryRecordDTO represents the database structure for persisting delivery
// records. Rows are append-only and owned by the order they reference.
type DeliveryRecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	DelivererID uuid.UUID `gorm:"type:uuid;index"`
	Units       int
	Payment     float64
	DeliveredAt time.Time
}

// TableName specifies the database table name for delivery records.
func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

// fromDomain converts an order aggregate to its database representation.
// Item attributes serialize to a JSON object, "{}" when there are none.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	attributes := aggregate.ItemSpec().Attributes()
	if attributes == nil {
		attributes = map[string]string{}
	}

	rawAttributes, err := json.Marshal(attributes)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OwnerID:           aggregate.OwnerID().Bytes(),
		ItemType:          aggregate.ItemSpec().Type(),
		ItemAttributes:    string(rawAttributes),
		Quantity:          aggregate.Quantity(),
		PricePerUnit:      aggregate.PricePerUnit(),
		Fee:               aggregate.Fee(),
		DeliveredQuantity: aggregate.DeliveredQuantity(),
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
		ExpiresAt:         aggregate.ExpiresAt(),
	}, nil
}

// toDomain converts a database DTO to an order aggregate.
// Reconstructs the complete aggregate through RestoreOrder so every stored row
// passes the same validation as a fresh one.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var attributes map[string]string
	if dto.ItemAttributes != "" {
		if err = json.Unmarshal([]byte(dto.ItemAttributes), &attributes); err != nil {
			return nil, err
		}
	}

	itemSpec, err := order.NewItemSpec(dto.ItemType, attributes)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		ownerID,
		itemSpec,
		dto.Quantity,
		dto.PricePerUnit,
		dto.Fee,
		dto.DeliveredQuantity,
		dto.CreatedAt.UTC(),
		dto.ExpiresAt.UTC(),
		order.Status(dto.Status),
	)
}

// deliveryFromDomain converts a delivery record to its database representation.
func deliveryFromDomain(record *order.DeliveryRecord) DeliveryRecordDTO {
	return DeliveryRecordDTO{
		ID:          record.ID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		DelivererID: record.DelivererID().Bytes(),
		Units:       record.Units(),
		Payment:     record.Payment(),
		DeliveredAt: record.DeliveredAt(),
	}
}

// deliveryToDomain converts a database DTO to a delivery record.
func deliveryToDomain(dto DeliveryRecordDTO) (*order.DeliveryRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	delivererID, err := kernel.UUIDFromBytes(dto.DelivererID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreDeliveryRecord(id, orderID, delivererID, dto.Units, dto.Payment, dto.DeliveredAt.UTC())
}
