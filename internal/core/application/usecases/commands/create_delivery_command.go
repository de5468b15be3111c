package commands

import (
	"errors"
	"fmt"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand opens a delivery job for an order. The same job is
// also created automatically by the backfill job; this command is the manual
// path.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a validated delivery-creation command.
func NewCreateDeliveryCommand(orderID int64) (CreateDeliveryCommand, error) {
	if orderID <= 0 {
		return CreateDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}

	return CreateDeliveryCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// OrderID returns the order the delivery job is opened for.
func (c CreateDeliveryCommand) OrderID() int64 {
	return c.orderID
}
