package ports

import (
	"context"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Implementations must allocate the order
	// number and insert the row as one atomic unit: the number comes from a
	// per-day counter advanced inside the same transaction as the insert,
	// with a bounded retry on order_number uniqueness conflicts. After a
	// successful Add the aggregate carries its storage id and order number.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its surrogate key.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllByBuyer retrieves a buyer's orders, newest first.
	GetAllByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)

	// Delete removes an order (administrative action).
	Delete(ctx context.Context, id int64) error

	// GetIDsWithoutDelivery returns ids of non-cancelled orders that have no
	// delivery record yet. Used by the backfill job that creates available
	// delivery jobs automatically.
	GetIDsWithoutDelivery(ctx context.Context) ([]int64, error)
}
