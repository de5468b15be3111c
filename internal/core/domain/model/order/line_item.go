package order

import (
	"errors"
	"fmt"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via
// NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one entry of an order's item list. The price is a snapshot
// taken at order time and is immutable afterwards, independent of the
// catalog's current price for the product.
type LineItem struct { //nolint:recvcheck //using for validation
	productID int64
	quantity  int
	price     float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item. Order creation validates items
// strictly; the permissive numeric coercion applied by the stats aggregator
// exists only for data already persisted by older clients.
func NewLineItem(productID int64, quantity int, price float64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created via NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the referenced catalog product id.
func (li LineItem) ProductID() int64 {
	return li.productID
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Price returns the per-unit price snapshot.
func (li LineItem) Price() float64 {
	return li.price
}

// Total returns price * quantity for this line.
func (li LineItem) Total() float64 {
	return li.price * float64(li.quantity)
}

func (li *LineItem) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product_id", fmt.Errorf("%d is not a valid product id", productID))
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%g is negative", price))
	}
	li.price = price
	return nil
}
