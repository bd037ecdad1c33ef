package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("order id", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusAndDelivered writes the order's status and delivered quantity
// only if the stored row still matches both expected prior values. Guarding on
// the pair, not the status alone, is what stops two concurrent deliveries from
// both applying against the same prior quantity.
func (r *GormOrderRepository) UpdateStatusAndDelivered(
	ctx context.Context,
	id kernel.UUID,
	newStatus order.Status,
	newDelivered int,
	expectedStatus order.Status,
	expectedDelivered int,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND delivered_quantity = ?",
			id.Bytes(), int(expectedStatus), expectedDelivered).
		Updates(map[string]any{
			"status":             int(newStatus),
			"delivered_quantity": newDelivered,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows means either the order is gone or another transition won the
	// race; a point read tells which.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return errs.NewVersionIsInvalidError(
		"order",
		errors.New("status or delivered quantity changed since read"),
	)
}

// GetAllByOwner retrieves every order posted by the given participant, newest first.
func (r *GormOrderRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*order.Order, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&dtos, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CountActiveByOwner returns the number of Pending orders the participant holds.
func (r *GormOrderRepository) CountActiveByOwner(ctx context.Context, ownerID kernel.UUID) (int, error) {
	if err := ownerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("owner_id = ? AND status = ?", ownerID.Bytes(), int(order.Pending)).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetAllPending retrieves every Pending order, newest first.
func (r *GormOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&dtos, "status = ?", int(order.Pending)).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetExpirable retrieves all Pending orders whose expiry precedes the cutoff,
// oldest expiry first.
func (r *GormOrderRepository) GetExpirable(ctx context.Context, before time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Order("expires_at, id").
		Find(&dtos, "status = ? AND expires_at < ?", int(order.Pending), before).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// AppendDelivery persists a delivery record.
func (r *GormOrderRepository) AppendDelivery(ctx context.Context, record *order.DeliveryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetDeliveries retrieves the delivery records for an order, oldest first.
func (r *GormOrderRepository) GetDeliveries(ctx context.Context, orderID kernel.UUID) ([]*order.DeliveryRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryRecordDTO
	if err := r.db.WithContext(ctx).
		Order("delivered_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	records := make([]*order.DeliveryRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := deliveryToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// PurgeTerminalBefore deletes terminal orders created before the cutoff and
// their delivery records, and reports how many orders went.
func (r *GormOrderRepository) PurgeTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	terminal := []int{int(order.Completed), int(order.Cancelled), int(order.Expired)}

	if err := r.db.WithContext(ctx).
		Where("order_id IN (?)", r.db.
			Model(&OrderDTO{}).
			Select("id").
			Where("status IN ? AND created_at < ?", terminal, cutoff),
		).
		Delete(&DeliveryRecordDTO{}).Error; err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("status IN ? AND created_at < ?", terminal, cutoff).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
