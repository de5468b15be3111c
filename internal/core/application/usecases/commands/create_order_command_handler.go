package commands

import (
	"context"
	"log/slog"

	"terabia/internal/core/domain/model/order"
	"terabia/internal/core/ports"
	"terabia/internal/metrics"
)

// CreateOrderCommandHandler handles the business logic for checkout. The
// order row and its number are persisted in one transaction; the OrderChanged
// event goes out only after a successful commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle creates the order and returns it with the storage id and order
// number already assigned.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.BuyerID(),
		cmd.Items(),
		cmd.DeliveryFee(),
		cmd.Address(),
		cmd.City(),
		cmd.Coords(),
		cmd.BuyerNotes(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()

	if pubErr := h.publisher.PublishOrderChanged(ctx, aggregate); pubErr != nil {
		h.logger.Warn("failed to publish order event",
			"order_number", aggregate.OrderNumber(), "error", pubErr)
	}

	return aggregate, nil
}
