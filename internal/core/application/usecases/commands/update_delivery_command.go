package commands

import (
	"errors"
	"fmt"

	"terabia/internal/core/domain/model/delivery"
	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// UpdateDeliveryCommand moves a delivery through its lifecycle: en_route,
// delivered, or cancelled. Claiming is not done here; that is the accept
// flow with its own conditional update.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID int64
	status     delivery.Status

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryCommand creates a validated lifecycle-transition command.
func NewUpdateDeliveryCommand(deliveryID int64, status delivery.Status) (UpdateDeliveryCommand, error) {
	if deliveryID <= 0 {
		return UpdateDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery_id", fmt.Errorf("%d is not a valid delivery id", deliveryID))
	}
	if err := status.Validate(); err != nil {
		return UpdateDeliveryCommand{}, err
	}
	if status == delivery.StatusAvailable || status == delivery.StatusAccepted {
		return UpdateDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not reachable through an update", status))
	}

	return UpdateDeliveryCommand{
		deliveryID: deliveryID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's storage id.
func (c UpdateDeliveryCommand) DeliveryID() int64 {
	return c.deliveryID
}

// Status returns the requested lifecycle state.
func (c UpdateDeliveryCommand) Status() delivery.Status {
	return c.status
}
