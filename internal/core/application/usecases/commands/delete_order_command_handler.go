package commands

import (
	"context"
	"errors"

	"terabia/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles administrative order removal. The
// covering delivery job, if one exists, is removed in the same transaction:
// a delivery never outlives its order.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle removes the order row and its delivery job, if any. Returns
// ObjectNotFound for an unknown order id.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	job, err := uow.DeliveryRepository().GetByOrder(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err = uow.DeliveryRepository().Delete(ctx, job.ID()); err != nil {
			return err
		}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
