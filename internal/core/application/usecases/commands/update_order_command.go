package commands

import (
	"errors"
	"fmt"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial order update. Absent fields (nil)
// are left untouched; present fields go through the domain state machines and
// destination rules.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	status        *order.Status
	paymentStatus *order.PaymentStatus
	address       *string
	city          *string
	coords        *kernel.Coords

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a validated partial-update command. A
// destination change requires both address and city.
func NewUpdateOrderCommand(
	orderID int64,
	status *order.Status,
	paymentStatus *order.PaymentStatus,
	address *string,
	city *string,
	coords *kernel.Coords,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setPaymentStatus(paymentStatus),
		cmd.setDestination(address, city, coords),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the target order's storage id.
func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Status returns the requested status transition, nil if untouched.
func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

// PaymentStatus returns the requested payment transition, nil if untouched.
func (c UpdateOrderCommand) PaymentStatus() *order.PaymentStatus {
	return c.paymentStatus
}

// Address returns the new destination address, nil if untouched.
func (c UpdateOrderCommand) Address() *string {
	return c.address
}

// City returns the new destination city, nil if untouched.
func (c UpdateOrderCommand) City() *string {
	return c.city
}

// Coords returns the new destination coordinates, nil if untouched.
func (c UpdateOrderCommand) Coords() *kernel.Coords {
	return c.coords
}

// HasDestination reports whether the command carries a destination change.
func (c UpdateOrderCommand) HasDestination() bool {
	return c.address != nil
}

func (c *UpdateOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not a valid order id", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	s := *status
	c.status = &s
	return nil
}

func (c *UpdateOrderCommand) setPaymentStatus(status *order.PaymentStatus) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	s := *status
	c.paymentStatus = &s
	return nil
}

func (c *UpdateOrderCommand) setDestination(address, city *string, coords *kernel.Coords) error {
	if address == nil && city == nil && coords == nil {
		return nil
	}
	if address == nil || *address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	if city == nil || *city == "" {
		return errs.NewValueIsRequiredError("delivery_city")
	}
	if coords != nil {
		if err := coords.Validate(); err != nil {
			return err
		}
		bound := *coords
		c.coords = &bound
	}
	a, ci := *address, *city
	c.address, c.city = &a, &ci
	return nil
}
