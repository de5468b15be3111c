package commands

import (
	"context"

	"terabia/internal/core/domain/model/delivery"
)

// BackfillDeliveriesCommandHandler creates the delivery jobs the manual flow
// missed. One transaction covers the whole sweep; the unique order_id index
// keeps a concurrent manual creation from producing a second job.
type BackfillDeliveriesCommandHandler struct {
	uowFactory UoWFactory
}

// NewBackfillDeliveriesCommandHandler creates a handler for the backfill sweep.
func NewBackfillDeliveriesCommandHandler(uowFactory UoWFactory) BackfillDeliveriesCommandHandler {
	return BackfillDeliveriesCommandHandler{uowFactory: uowFactory}
}

// Handle opens a delivery job for every uncovered order and reports how many
// were created.
func (h *BackfillDeliveriesCommandHandler) Handle(ctx context.Context, cmd BackfillDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderIDs, err := uow.OrderRepository().GetIDsWithoutDelivery(ctx)
	if err != nil {
		return 0, err
	}

	for _, orderID := range orderIDs {
		aggregate, deliveryErr := delivery.NewDelivery(orderID)
		if deliveryErr != nil {
			return 0, deliveryErr
		}
		if deliveryErr = uow.DeliveryRepository().Add(ctx, aggregate); deliveryErr != nil {
			return 0, deliveryErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(orderIDs), nil
}
