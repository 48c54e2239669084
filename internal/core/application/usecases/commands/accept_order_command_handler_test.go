package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	o := makePendingOrder(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), makeActor(t, actor.RoleStaff))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewAcceptOrderCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, order.Preparing, o.Status())
	assert.NotEmpty(t, o.AcceptanceCode())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notification.EventOrderAccepted, events[0].Type())
	assert.Equal(t, o.AcceptanceCode(), events[0].Metadata()["acceptance_code"])
}

func TestAcceptOrderCommandHandler_Handle_CustomerIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	o := makePendingOrder(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), makeActor(t, actor.RoleCustomer))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewAcceptOrderCommandHandler(factory, publisher)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrUnauthorized)
	assert.Equal(t, order.Pending, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, publisher.Events())
}

func TestAcceptOrderCommandHandler_Handle_ConcurrentAcceptLoses(t *testing.T) {
	ctx := context.Background()
	o := makePendingOrder(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), makeActor(t, actor.RoleStaff))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending).
		Return(errs.NewPreconditionFailedError("order left Pending status")).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewAcceptOrderCommandHandler(factory, publisher)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPreconditionFailed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, publisher.Events())
}
