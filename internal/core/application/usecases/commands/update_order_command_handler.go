package commands

import (
	"context"
	"log/slog"

	"terabia/internal/core/domain/model/order"
	"terabia/internal/core/ports"
)

// UpdateOrderCommandHandler applies partial updates to an order. Transitions
// run through the aggregate's state machines, so an illegal jump (pending to
// delivered, or any move out of a terminal state) fails before anything is
// written.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_order"),
	}
}

// Handle loads the order, applies the requested changes, and persists them.
// Returns the updated aggregate.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if status := cmd.Status(); status != nil {
		if err = aggregate.ChangeStatus(*status); err != nil {
			return nil, err
		}
	}
	if paymentStatus := cmd.PaymentStatus(); paymentStatus != nil {
		if err = aggregate.ChangePaymentStatus(*paymentStatus); err != nil {
			return nil, err
		}
	}
	if cmd.HasDestination() {
		if err = aggregate.ChangeDestination(*cmd.Address(), *cmd.City(), cmd.Coords()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if pubErr := h.publisher.PublishOrderChanged(ctx, aggregate); pubErr != nil {
		h.logger.Warn("failed to publish order event",
			"order_number", aggregate.OrderNumber(), "error", pubErr)
	}

	return aggregate, nil
}
