package commands

import (
	"context"
	"errors"
	"log/slog"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/core/ports"
	"terabia/internal/metrics"
	"terabia/internal/pkg/errs"
)

// AcceptDeliveryCommandHandler handles the claim flow. The decision of who
// wins is made entirely by the repository's conditional update; this handler
// never reads the delivery before writing. The winning claim and the agency
// mirror on the order commit in one transaction, so no observer can see a
// claimed delivery whose order still looks unassigned.
//
// A claim that loses the race is a final Conflict, reported to the caller
// without retry. Only transport-level failures are ever worth retrying, and
// that is the caller's decision.
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery claims.
func NewAcceptDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "accept_delivery"),
	}
}

// Handle claims the delivery for the agency and returns the claimed
// aggregate. Fails with ObjectNotFound if the delivery does not exist and
// Conflict if it is no longer available.
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) (*delivery.Delivery, error) {
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

	claimed, err := uow.DeliveryRepository().Claim(ctx, cmd.DeliveryID(), cmd.AgencyID())
	if err != nil {
		h.observeClaimFailure(err)
		return nil, err
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, claimed.OrderID())
	if err != nil {
		return nil, err
	}
	if err = orderAggregate.BindAgency(cmd.AgencyID()); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DeliveryClaimsTotal.WithLabelValues(metrics.ClaimResultWon).Inc()

	if pubErr := h.publisher.PublishOrderChanged(ctx, orderAggregate); pubErr != nil {
		h.logger.Warn("failed to publish order event",
			"order_number", orderAggregate.OrderNumber(), "error", pubErr)
	}

	return claimed, nil
}

func (h *AcceptDeliveryCommandHandler) observeClaimFailure(err error) {
	switch {
	case errors.Is(err, errs.ErrConflict):
		metrics.DeliveryClaimsTotal.WithLabelValues(metrics.ClaimResultConflict).Inc()
	case errors.Is(err, errs.ErrObjectNotFound):
		metrics.DeliveryClaimsTotal.WithLabelValues(metrics.ClaimResultNotFound).Inc()
	}
}
