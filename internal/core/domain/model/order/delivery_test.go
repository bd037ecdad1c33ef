package order_test

import (
	"testing"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryRecord(t *testing.T) {
	orderID := kernel.NewUUID()
	delivererID := kernel.NewUUID()
	deliveredAt := time.Now()

	t.Run("should create valid record", func(t *testing.T) {
		record, err := order.NewDeliveryRecord(orderID, delivererID, 4, 10, deliveredAt)

		require.NoError(t, err)
		require.NoError(t, record.Validate())
		require.NoError(t, record.ID().Validate())
		assert.True(t, record.OrderID().IsEqual(orderID))
		assert.True(t, record.DelivererID().IsEqual(delivererID))
		assert.Equal(t, 4, record.Units())
		assert.InDelta(t, 10.0, record.Payment(), 0.0001)
		assert.Equal(t, deliveredAt, record.DeliveredAt())
	})

	t.Run("should allow zero payment", func(t *testing.T) {
		record, err := order.NewDeliveryRecord(orderID, delivererID, 1, 0, deliveredAt)

		require.NoError(t, err)
		assert.InDelta(t, 0.0, record.Payment(), 0.0001)
	})

	t.Run("should fail with zero units", func(t *testing.T) {
		_, err := order.NewDeliveryRecord(orderID, delivererID, 0, 10, deliveredAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "units is invalid")
	})

	t.Run("should fail with negative payment", func(t *testing.T) {
		_, err := order.NewDeliveryRecord(orderID, delivererID, 1, -1, deliveredAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment is invalid")
	})

	t.Run("should fail with invalid deliverer", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := order.NewDeliveryRecord(orderID, invalid, 1, 1, deliveredAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestRestoreDeliveryRecord(t *testing.T) {
	t.Run("should restore record with given id", func(t *testing.T) {
		id := kernel.NewUUID()

		record, err := order.RestoreDeliveryRecord(id, kernel.NewUUID(), kernel.NewUUID(), 2, 5, time.Now())

		require.NoError(t, err)
		assert.True(t, record.ID().IsEqual(id))
	})

	t.Run("nil record fails validation", func(t *testing.T) {
		var record *order.DeliveryRecord

		assert.ErrorIs(t, record.Validate(), order.ErrDeliveryRecordIsNotConstructed)
	})
}
