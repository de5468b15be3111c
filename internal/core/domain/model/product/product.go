// Package product holds the minimal catalog view the coordination core needs:
// ownership and activity flags for seller statistics, and the current price
// used to snapshot line items at checkout. Catalog browsing and search live
// outside this core.
package product

import (
	"errors"
	"fmt"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product was not created via
// NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a catalog entry owned by a seller.
type Product struct {
	id       int64
	sellerID kernel.UUID
	name     string
	price    float64
	isActive bool

	isConstructed bool
}

// NewProduct creates a product listing for a seller. New listings start active.
func NewProduct(sellerID kernel.UUID, name string, price float64) (*Product, error) {
	p := &Product{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setSellerID(sellerID),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id int64, sellerID kernel.UUID, name string, price float64, isActive bool) (*Product, error) {
	p, err := NewProduct(sellerID, name, price)
	if err != nil {
		return nil, err
	}
	p.id = id
	p.isActive = isActive
	return p, nil
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the storage-assigned surrogate key.
func (p *Product) ID() int64 {
	return p.id
}

// SellerID returns the owning seller's identifier.
func (p *Product) SellerID() kernel.UUID {
	return p.sellerID
}

// Name returns the listing name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price. Orders snapshot this value into
// their line items; later price changes never affect existing orders.
func (p *Product) Price() float64 {
	return p.price
}

// IsActive reports whether the listing is visible to buyers.
func (p *Product) IsActive() bool {
	return p.isActive
}

// MarkPersisted records the storage-assigned id after the initial insert.
func (p *Product) MarkPersisted(id int64) error {
	if p.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("product already persisted with id %d", p.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid storage id", id))
	}
	p.id = id
	return nil
}

// Deactivate hides the listing from buyers without deleting it.
func (p *Product) Deactivate() {
	p.isActive = false
}

// Activate makes the listing visible to buyers again.
func (p *Product) Activate() {
	p.isActive = true
}

func (p *Product) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%g is negative", price))
	}
	p.price = price
	return nil
}
