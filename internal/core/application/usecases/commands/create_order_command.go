package commands

import (
	"errors"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"
	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request: the buyer, the line-item
// snapshots, the delivery fee, and the destination. The order number is not
// part of the command; it is allocated by storage during the insert.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyerID     kernel.UUID
	items       []order.LineItem
	deliveryFee float64
	address     string
	city        string
	coords      *kernel.Coords
	buyerNotes  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated checkout command. Line items are
// validated strictly here; the permissive coercion of the stats aggregator
// never applies on the write path.
func NewCreateOrderCommand(
	buyerID kernel.UUID,
	items []order.LineItem,
	deliveryFee float64,
	address string,
	city string,
	coords *kernel.Coords,
	buyerNotes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryFee: deliveryFee,
		address:     address,
		city:        city,
		buyerNotes:  buyerNotes,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setItems(items),
		cmd.setCoords(coords),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BuyerID returns the purchasing buyer's identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Items returns the line items of the checkout.
func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// DeliveryFee returns the delivery fee.
func (c CreateOrderCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

// Address returns the destination street address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// City returns the destination city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// Coords returns the optional destination coordinates.
func (c CreateOrderCommand) Coords() *kernel.Coords {
	return c.coords
}

// BuyerNotes returns free-form notes left by the buyer.
func (c CreateOrderCommand) BuyerNotes() string {
	return c.buyerNotes
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setCoords(coords *kernel.Coords) error {
	if coords == nil {
		return nil
	}
	if err := coords.Validate(); err != nil {
		return err
	}
	bound := *coords
	c.coords = &bound
	return nil
}
