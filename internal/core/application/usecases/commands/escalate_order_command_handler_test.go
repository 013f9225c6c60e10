package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEscalateOrderCommandHandler_Handle_Escalates(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, time.Now().Add(-2*time.Hour))
	cmd, err := commands.NewEscalateOrderCommand(aggregate.ID(), "customer requested escalation")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return().Once()

	h := commands.NewEscalateOrderCommandHandler(factory, publisher)
	escalated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, escalated)
	assert.Equal(t, order.Escalated, aggregate.Status())
	assert.True(t, aggregate.IsEscalated())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestEscalateOrderCommandHandler_Handle_NotEligible(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, time.Now().Add(-2*time.Hour))
	require.NoError(t, aggregate.Acknowledge(time.Now()))
	aggregate.ClearEvents()

	cmd, err := commands.NewEscalateOrderCommand(aggregate.ID(), "customer requested escalation")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewEscalateOrderCommandHandler(factory, publisher)
	escalated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, escalated)
	assert.Equal(t, order.Acknowledged, aggregate.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestEscalateOrderCommandHandler_Handle_AlreadyEscalated(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, time.Now().Add(-2*time.Hour))
	require.True(t, aggregate.Escalate("first escalation", time.Now()))
	aggregate.ClearEvents()

	cmd, err := commands.NewEscalateOrderCommand(aggregate.ID(), "second escalation")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEscalateOrderCommandHandler(factory, nil)
	escalated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, escalated)
	assert.Equal(t, "first escalation", aggregate.EscalationReason())
}
