package commands_test

import (
	"testing"
	"time"

	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func availableDelivery(t *testing.T, id, orderID int64) *delivery.Delivery {
	t.Helper()

	d, err := delivery.RestoreDelivery(
		id, orderID, nil, delivery.StatusAvailable, time.Now().UTC(), nil, nil)
	require.NoError(t, err)
	return d
}

func TestDeleteOrderCommandHandler_Handle_RemovesCoveringDelivery(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand(7)
	require.NoError(t, err)

	job := availableDelivery(t, 11, 7)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrder", mock.Anything, int64(7)).Return(job, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Delete", mock.Anything, int64(11)).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Delete", mock.Anything, int64(7)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_NoCoveringDelivery(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand(7)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrder", mock.Anything, int64(7)).
			Return(nil, errs.NewObjectNotFoundError("order", int64(7))).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Delete", mock.Anything, int64(7)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	deliveryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteOrderCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteOrderCommand(404)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrder", mock.Anything, int64(404)).
			Return(nil, errs.NewObjectNotFoundError("order", int64(404))).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Delete", mock.Anything, int64(404)).
			Return(errs.NewObjectNotFoundError("order", int64(404))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
