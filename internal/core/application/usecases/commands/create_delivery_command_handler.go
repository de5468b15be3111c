package commands

import (
	"context"
	"fmt"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/pkg/errs"
)

// CreateDeliveryCommandHandler opens an available delivery job for an
// existing order. The order must exist and not be cancelled; the unique
// order_id index rejects a second job for the same order with a Conflict.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle creates the delivery job and returns it.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if orderAggregate.Status() == order.StatusCancelled {
		return nil, errs.NewConflictErrorWithCause("orderId", cmd.OrderID(),
			fmt.Errorf("cancelled order cannot be delivered"))
	}

	aggregate, err := delivery.NewDelivery(cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
