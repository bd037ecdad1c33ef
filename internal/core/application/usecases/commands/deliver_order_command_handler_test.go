package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreTestOrder(t *testing.T, quantity, delivered int, status order.Status) *order.Order {
	t.Helper()

	spec, err := order.NewItemSpec("oak_log", nil)
	require.NoError(t, err)

	target, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), spec, quantity, 2.5, 0,
		delivered, time.Now().Add(-time.Hour), time.Now().Add(time.Hour), status,
	)
	require.NoError(t, err)
	return target
}

func newDeliverOrderCommand(t *testing.T, orderID, delivererID kernel.UUID, quantity int) commands.DeliverOrderCommand {
	t.Helper()

	spec, err := order.NewItemSpec("oak_log", nil)
	require.NoError(t, err)

	cmd, err := commands.NewDeliverOrderCommand(orderID, delivererID, spec, quantity)
	require.NoError(t, err)
	return cmd
}

func TestDeliverOrderCommandHandler_Handle_CompletesOrder(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 4, 0, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 4)

	repo := new(MockOrderRepository)
	statsRepo := new(MockStatsRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	uow.On("StatsRepository").Return(statsRepo)
	uow.On("TrackAggregate", target.ID(), target)

	mock.InOrder(
		repo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		ledger.On("Deposit", ctx, delivererID, 10.0).Return(nil).Once(), // 4 units at 2.5
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("AppendDelivery", ctx, mock.AnythingOfType("*order.DeliveryRecord")).Return(nil).Once(),
		repo.On("UpdateStatusAndDelivered", ctx, target.ID(), order.Completed, 4, order.Pending, 0).Return(nil).Once(),
		statsRepo.On("GetOrCreate", ctx, delivererID).Return(mustStats(t, delivererID), nil).Once(),
		statsRepo.On("Save", ctx, mock.Anything).Return(nil).Once(),
		statsRepo.On("GetOrCreate", ctx, target.OwnerID()).Return(mustStats(t, target.OwnerID()), nil).Once(),
		statsRepo.On("Save", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	record, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 4, record.Units())
	assert.InDelta(t, 10.0, record.Payment(), 0.0001)
	assert.Equal(t, order.Completed, target.Status())
	repo.AssertExpectations(t)
	statsRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_ClampsToRemaining(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 10, 6, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 2)

	repo := new(MockOrderRepository)
	statsRepo := new(MockStatsRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	uow.On("StatsRepository").Return(statsRepo)
	uow.On("TrackAggregate", target.ID(), target)

	repo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	ledger.On("Deposit", ctx, delivererID, 5.0).Return(nil).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("AppendDelivery", ctx, mock.Anything).Return(nil).Once()
	repo.On("UpdateStatusAndDelivered", ctx, target.ID(), order.Pending, 8, order.Pending, 6).Return(nil).Once()
	statsRepo.On("GetOrCreate", ctx, delivererID).Return(mustStats(t, delivererID), nil).Once()
	statsRepo.On("Save", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	record, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, record.Units())
	assert.Equal(t, order.Pending, target.Status())
	// The order stays open; no owner completion stats are written.
	statsRepo.AssertNumberOfCalls(t, "GetOrCreate", 1)
}

func TestDeliverOrderCommandHandler_Handle_RejectsTerminalOrder(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 4, 4, order.Completed)
	cmd := newDeliverOrderCommand(t, target.ID(), kernel.NewUUID(), 1)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	repo.On("Get", ctx, target.ID()).Return(target, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotActive)
	ledger.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_RejectsItemMismatch(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 4, 0, order.Pending)

	wrongItem, err := order.NewItemSpec("birch_log", nil)
	require.NoError(t, err)
	cmd, err := commands.NewDeliverOrderCommand(target.ID(), kernel.NewUUID(), wrongItem, 1)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	repo.On("Get", ctx, target.ID()).Return(target, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	_, handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, commands.ErrItemMismatch)
	ledger.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_DepositDeclined(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 4, 0, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 4)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	repo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	ledger.On("Deposit", ctx, delivererID, 10.0).Return(errors.New("account frozen")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrLedgerFailure)
	// A declined payment leaves no store state behind.
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_RetriesAfterLostRace(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 10, 0, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 2)

	firstRepo := new(MockOrderRepository)
	firstUow := new(MockUoW)
	firstUow.On("OrderRepository").Return(firstRepo)
	firstUow.On("Begin", ctx).Return(nil)
	firstUow.On("Rollback", ctx).Return(nil)
	firstRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	firstRepo.On("AppendDelivery", ctx, mock.Anything).Return(nil).Once()
	firstRepo.On("UpdateStatusAndDelivered", ctx, target.ID(), order.Pending, 2, order.Pending, 0).
		Return(errs.NewVersionIsInvalidError("order", errors.New("status or delivered quantity changed since read"))).Once()

	ledger := new(MockLedger)
	ledger.On("Deposit", ctx, delivererID, 5.0).Return(nil).Once()

	// A concurrent delivery advanced the order to 3 of 10 between our read and
	// our write. The retry reads the fresh state and applies the same two units.
	fresh := restoreTestOrder(t, 10, 3, order.Pending)
	secondRepo := new(MockOrderRepository)
	secondStats := new(MockStatsRepository)
	secondUow := new(MockUoW)
	secondUow.On("OrderRepository").Return(secondRepo)
	secondUow.On("StatsRepository").Return(secondStats)
	secondUow.On("TrackAggregate", fresh.ID(), fresh)
	secondUow.On("Begin", ctx).Return(nil)
	secondUow.On("Commit", ctx).Return(nil)
	secondUow.On("Rollback", ctx).Return(errors.New("no active transaction"))
	secondRepo.On("Get", ctx, target.ID()).Return(fresh, nil).Once()
	secondRepo.On("AppendDelivery", ctx, mock.Anything).Return(nil).Once()
	secondRepo.On("UpdateStatusAndDelivered", ctx, fresh.ID(), order.Pending, 5, order.Pending, 3).Return(nil).Once()
	secondStats.On("GetOrCreate", ctx, delivererID).Return(mustStats(t, delivererID), nil).Once()
	secondStats.On("Save", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(firstUow).Once()
	factory.On("Create").Return(secondUow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	record, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, record.Units())
	// The payment was made exactly once, before the first write attempt.
	ledger.AssertNumberOfCalls(t, "Deposit", 1)
	firstRepo.AssertExpectations(t)
	secondRepo.AssertExpectations(t)
}

func TestDeliverOrderCommandHandler_Handle_RaceLostToTerminalTransition(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 10, 0, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 2)

	firstRepo := new(MockOrderRepository)
	firstUow := new(MockUoW)
	firstUow.On("OrderRepository").Return(firstRepo)
	firstUow.On("Begin", ctx).Return(nil)
	firstUow.On("Rollback", ctx).Return(nil)
	firstRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	firstRepo.On("AppendDelivery", ctx, mock.Anything).Return(nil).Once()
	firstRepo.On("UpdateStatusAndDelivered", ctx, target.ID(), order.Pending, 2, order.Pending, 0).
		Return(errs.NewVersionIsInvalidError("order", errors.New("status or delivered quantity changed since read"))).Once()

	ledger := new(MockLedger)
	ledger.On("Deposit", ctx, delivererID, 5.0).Return(nil).Once()

	// The owner cancelled between our read and our write. The payment stands
	// but no units can be recorded any more.
	cancelled := restoreTestOrder(t, 10, 0, order.Cancelled)
	secondRepo := new(MockOrderRepository)
	secondUow := new(MockUoW)
	secondUow.On("OrderRepository").Return(secondRepo)
	secondRepo.On("Get", ctx, target.ID()).Return(cancelled, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(firstUow).Once()
	factory.On("Create").Return(secondUow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	record, err := h.Handle(ctx, cmd)

	assert.Nil(t, record)
	var partialErr *commands.PartialDeliveryError
	require.ErrorAs(t, err, &partialErr)
	assert.Equal(t, 2, partialErr.UnitsPaid)
	assert.Equal(t, 0, partialErr.UnitsRecorded)
	assert.InDelta(t, 5.0, partialErr.Payment, 0.0001)
	// No money moves back: the goods were handed over.
	ledger.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_StoreFailureIsCompensated(t *testing.T) {
	ctx := t.Context()
	target := restoreTestOrder(t, 4, 0, order.Pending)
	delivererID := kernel.NewUUID()
	cmd := newDeliverOrderCommand(t, target.ID(), delivererID, 4)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	ledger := new(MockLedger)

	uow.On("OrderRepository").Return(repo)
	repo.On("Get", ctx, target.ID()).Return(target, nil).Once()

	mock.InOrder(
		ledger.On("Deposit", ctx, delivererID, 10.0).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("AppendDelivery", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		ledger.On("Withdraw", ctx, delivererID, 10.0).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverOrderCommandHandler(factory, ledger, nil, testLogger())
	record, err := h.Handle(ctx, cmd)

	assert.Nil(t, record)
	var persistenceErr *commands.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.True(t, persistenceErr.Compensated)
	ledger.AssertExpectations(t)
}
