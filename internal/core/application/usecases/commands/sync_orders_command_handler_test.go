package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderSyncClient struct{ mock.Mock }

func (m *MockOrderSyncClient) FetchAll(ctx context.Context) ([]order.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Snapshot), args.Error(1)
}

func (m *MockOrderSyncClient) PushAll(ctx context.Context, snapshots []order.Snapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func TestSyncOrdersCommandHandler_Handle_AddsUnknownOrder(t *testing.T) {
	ctx := t.Context()
	remote := storedOrder(t, time.Now().Add(-30*time.Minute))

	syncClient := new(MockOrderSyncClient)
	syncClient.On("FetchAll", ctx).Return([]order.Snapshot{remote.Snapshot()}, nil).Once()
	syncClient.On("PushAll", ctx, mock.Anything).Return(nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, remote.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", remote.ID())).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("GetAll", mock.Anything).Return([]*order.Order{remote}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncOrdersCommandHandler(factory, syncClient)
	applied, err := h.Handle(ctx, commands.NewSyncOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	syncClient.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSyncOrdersCommandHandler_Handle_RemoteNewerWins(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now().Add(-30 * time.Minute)
	local := storedOrder(t, createdAt)

	newer, err := order.RestoreOrder(local.Snapshot())
	require.NoError(t, err)
	require.NoError(t, newer.Acknowledge(time.Now()))
	newer.ClearEvents()

	syncClient := new(MockOrderSyncClient)
	syncClient.On("FetchAll", ctx).Return([]order.Snapshot{newer.Snapshot()}, nil).Once()
	syncClient.On("PushAll", ctx, mock.Anything).Return(nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, local.ID()).Return(local, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("GetAll", mock.Anything).Return([]*order.Order{newer}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncOrdersCommandHandler(factory, syncClient)
	applied, err := h.Handle(ctx, commands.NewSyncOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	repo.AssertExpectations(t)
}

func TestSyncOrdersCommandHandler_Handle_LocalNewerKept(t *testing.T) {
	ctx := t.Context()
	createdAt := time.Now().Add(-30 * time.Minute)
	local := storedOrder(t, createdAt)
	staleSnapshot := local.Snapshot()

	require.NoError(t, local.Acknowledge(time.Now()))
	local.ClearEvents()

	syncClient := new(MockOrderSyncClient)
	syncClient.On("FetchAll", ctx).Return([]order.Snapshot{staleSnapshot}, nil).Once()
	syncClient.On("PushAll", ctx, mock.Anything).Return(nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, local.ID()).Return(local, nil).Once()
	repo.On("GetAll", mock.Anything).Return([]*order.Order{local}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSyncOrdersCommandHandler(factory, syncClient)
	applied, err := h.Handle(ctx, commands.NewSyncOrdersCommand())
	require.NoError(t, err)
	assert.Zero(t, applied)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSyncOrdersCommandHandler_Handle_FetchError(t *testing.T) {
	ctx := t.Context()

	syncClient := new(MockOrderSyncClient)
	syncClient.On("FetchAll", ctx).Return(nil, errors.New("store unreachable")).Once()

	factory := new(MockOrderUoWFactory)

	h := commands.NewSyncOrdersCommandHandler(factory, syncClient)
	_, err := h.Handle(ctx, commands.NewSyncOrdersCommand())
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
