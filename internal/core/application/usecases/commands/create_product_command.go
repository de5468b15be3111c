package commands

import (
	"errors"
	"fmt"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand registers a seller's catalog listing. Only the fields
// the coordination core needs; catalog browsing lives elsewhere.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	sellerID kernel.UUID
	name     string
	price    float64

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a validated product-creation command.
func NewCreateProductCommand(sellerID kernel.UUID, name string, price float64) (CreateProductCommand, error) {
	if err := sellerID.Validate(); err != nil {
		return CreateProductCommand{}, err
	}
	if name == "" {
		return CreateProductCommand{}, errs.NewValueIsRequiredError("name")
	}
	if price < 0 {
		return CreateProductCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%g is negative", price))
	}

	return CreateProductCommand{
		sellerID: sellerID,
		name:     name,
		price:    price,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// SellerID returns the owning seller's identifier.
func (c CreateProductCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Name returns the listing name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Price returns the listing price.
func (c CreateProductCommand) Price() float64 {
	return c.price
}
