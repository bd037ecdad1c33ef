package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/model/stats"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustStats(t *testing.T, participantID kernel.UUID) *stats.ParticipantStats {
	t.Helper()

	s, err := stats.NewParticipantStats(participantID)
	require.NoError(t, err)
	return s
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusAndDelivered(
	ctx context.Context,
	id kernel.UUID,
	newStatus order.Status,
	newDelivered int,
	expectedStatus order.Status,
	expectedDelivered int,
) error {
	args := m.Called(ctx, id, newStatus, newDelivered, expectedStatus, expectedDelivered)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByOwner(ctx context.Context, ownerID kernel.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetExpirable(ctx context.Context, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AppendDelivery(ctx context.Context, record *order.DeliveryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderRepository) GetDeliveries(ctx context.Context, orderID kernel.UUID) ([]*order.DeliveryRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.DeliveryRecord), args.Error(1)
}

func (m *MockOrderRepository) PurgeTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockStatsRepository struct{ mock.Mock }

func (m *MockStatsRepository) GetOrCreate(ctx context.Context, participantID kernel.UUID) (*stats.ParticipantStats, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.ParticipantStats), args.Error(1)
}

func (m *MockStatsRepository) Save(ctx context.Context, aggregate *stats.ParticipantStats) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StatsRepository() ports.StatsRepository {
	args := m.Called()
	return args.Get(0).(ports.StatsRepository)
}

func (m *MockUoW) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func (m *MockUoW) TrackedAggregates() []ports.TrackedAggregate {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ports.TrackedAggregate)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Withdraw(ctx context.Context, accountID kernel.UUID, amount float64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockLedger) Deposit(ctx context.Context, accountID kernel.UUID, amount float64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockLedger) Balance(ctx context.Context, accountID kernel.UUID) (float64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(float64), args.Error(1)
}

type MockCreationPolicy struct{ mock.Mock }

func (m *MockCreationPolicy) CanCreateOrder(ctx context.Context, participantID kernel.UUID, currentActiveCount int) (bool, error) {
	args := m.Called(ctx, participantID, currentActiveCount)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.DomainEvent) {
	m.Called(ctx, events)
}
