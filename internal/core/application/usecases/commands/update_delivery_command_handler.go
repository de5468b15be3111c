package commands

import (
	"context"
	"log/slog"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/core/ports"
)

// UpdateDeliveryCommandHandler applies a delivery lifecycle transition and
// mirrors road progress onto the order: en_route moves the order to
// in_transit, delivered moves it to delivered. Cancelling a delivery leaves
// the order untouched so an operator can open a fresh job for it.
type UpdateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateDeliveryCommandHandler creates a handler for delivery updates.
func NewUpdateDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_delivery"),
	}
}

// Handle applies the transition and returns the updated delivery.
func (h *UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) (*delivery.Delivery, error) {
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

	aggregate, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	switch cmd.Status() {
	case delivery.StatusEnRoute:
		err = aggregate.StartRoute()
	case delivery.StatusDelivered:
		err = aggregate.Complete()
	case delivery.StatusCancelled:
		err = aggregate.Cancel()
	}
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	var mirrored *order.Order
	if cmd.Status() != delivery.StatusCancelled {
		mirrored, err = h.mirrorOrder(ctx, uow, aggregate.OrderID(), cmd.Status())
		if err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if mirrored != nil {
		if pubErr := h.publisher.PublishOrderChanged(ctx, mirrored); pubErr != nil {
			h.logger.Warn("failed to publish order event",
				"order_number", mirrored.OrderNumber(), "error", pubErr)
		}
	}

	return aggregate, nil
}

func (h *UpdateDeliveryCommandHandler) mirrorOrder(
	ctx context.Context,
	uow UoW,
	orderID int64,
	status delivery.Status,
) (*order.Order, error) {
	orderAggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next := order.StatusInTransit
	if status == delivery.StatusDelivered {
		next = order.StatusDelivered
	}
	if err = orderAggregate.ChangeStatus(next); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return nil, err
	}
	return orderAggregate, nil
}
