package commands

import (
	"errors"
	"fmt"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand removes a delivery job. Administrative action.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID int64

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a validated delete command.
func NewDeleteDeliveryCommand(deliveryID int64) (DeleteDeliveryCommand, error) {
	if deliveryID <= 0 {
		return DeleteDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery_id", fmt.Errorf("%d is not a valid delivery id", deliveryID))
	}

	return DeleteDeliveryCommand{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's storage id.
func (c DeleteDeliveryCommand) DeliveryID() int64 {
	return c.deliveryID
}
