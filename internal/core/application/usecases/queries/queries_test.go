package queries_test

import (
	"testing"

	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenOrdersQuery(t *testing.T) {
	query := queries.NewGetOpenOrdersQuery()

	require.NoError(t, query.Validate())

	var unconstructed queries.GetOpenOrdersQuery
	assert.ErrorIs(t, unconstructed.Validate(), queries.ErrGetOpenOrdersQueryIsNotConstructed)
}

func TestNewGetOwnerOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		ownerID := kernel.NewUUID()

		query, err := queries.NewGetOwnerOrdersQuery(ownerID)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.OwnerID().IsEqual(ownerID))
	})

	t.Run("should fail with invalid owner", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetOwnerOrdersQuery(invalid)

		require.Error(t, err)
	})

	t.Run("should reject unconstructed query", func(t *testing.T) {
		var query queries.GetOwnerOrdersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOwnerOrdersQueryIsNotConstructed)
	})
}

func TestNewGetOrderDeliveriesQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderDeliveriesQuery(orderID)

		require.NoError(t, err)
		assert.True(t, query.OrderID().IsEqual(orderID))
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetOrderDeliveriesQuery(invalid)

		require.Error(t, err)
	})
}

func TestNewGetParticipantStatsQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		participantID := kernel.NewUUID()

		query, err := queries.NewGetParticipantStatsQuery(participantID)

		require.NoError(t, err)
		assert.True(t, query.ParticipantID().IsEqual(participantID))
	})

	t.Run("should fail with invalid participant", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := queries.NewGetParticipantStatsQuery(invalid)

		require.Error(t, err)
	})
}

func TestOrderResponse_RemainingQuantity(t *testing.T) {
	response := queries.OrderResponse{Quantity: 10, DeliveredQuantity: 4}

	assert.Equal(t, 6, response.RemainingQuantity())
}
