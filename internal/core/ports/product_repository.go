package ports

import (
	"context"

	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the catalog view
// consumed by this core (line-item snapshots and seller statistics).
type ProductRepository interface {
	// Add persists a new product listing.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its surrogate key.
	Get(ctx context.Context, id int64) (*product.Product, error)

	// GetAllBySeller retrieves all products owned by the seller.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*product.Product, error)
}
